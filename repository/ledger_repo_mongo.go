package repository

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"transportbill/models"
)

const (
	billsCollection    = "bills"
	countersCollection = "counters"
)

// A bill is one document with its consignments embedded, so the header and
// every item are written by a single atomic insert.
type billDoc struct {
	ID         int64                `bson:"_id"`
	BillDate   string               `bson:"bill_date"`
	GSTPercent primitive.Decimal128 `bson:"gst_percent"`
	GSTAmount  primitive.Decimal128 `bson:"gst_amount"`
	Total      primitive.Decimal128 `bson:"total"`
	GrandTotal primitive.Decimal128 `bson:"grand_total"`
	CreatedAt  time.Time            `bson:"created_at"`
	Items      []consignmentDoc     `bson:"items"`
}

type consignmentDoc struct {
	Seq         int                  `bson:"seq"`
	Date        string               `bson:"date"`
	ConNo       string               `bson:"con_no"`
	Consignee   string               `bson:"consignee"`
	Weight      string               `bson:"weight"`
	Destination string               `bson:"destination"`
	Amount      primitive.Decimal128 `bson:"amount"`
}

type MongoLedgerRepo struct {
	DB *mongo.Database
}

func NewMongoLedgerRepo(db *mongo.Database) *MongoLedgerRepo {
	return &MongoLedgerRepo{DB: db}
}

func toDecimal128(d decimal.Decimal) (primitive.Decimal128, error) {
	return primitive.ParseDecimal128(d.String())
}

func fromDecimal128(d primitive.Decimal128) (decimal.Decimal, error) {
	return decimal.NewFromString(d.String())
}

// nextBillID hands out monotonic ids from the counters collection. An id
// taken by a failed insert is not reused.
func (r *MongoLedgerRepo) nextBillID(ctx context.Context) (int64, error) {
	var counter struct {
		Seq int64 `bson:"seq"`
	}
	err := r.DB.Collection(countersCollection).FindOneAndUpdate(ctx,
		bson.M{"_id": billsCollection},
		bson.M{"$inc": bson.M{"seq": int64(1)}},
		options.FindOneAndUpdate().SetUpsert(true).SetReturnDocument(options.After),
	).Decode(&counter)
	return counter.Seq, err
}

func toBillDoc(id int64, snap *models.BillSnapshot) (*billDoc, error) {
	doc := &billDoc{
		ID:        id,
		BillDate:  snap.BillDate,
		CreatedAt: time.Now().UTC(),
		Items:     make([]consignmentDoc, len(snap.Items)),
	}
	var err error
	if doc.GSTPercent, err = toDecimal128(snap.GSTPercent); err != nil {
		return nil, err
	}
	if doc.GSTAmount, err = toDecimal128(snap.GSTAmount); err != nil {
		return nil, err
	}
	if doc.Total, err = toDecimal128(snap.Total); err != nil {
		return nil, err
	}
	if doc.GrandTotal, err = toDecimal128(snap.GrandTotal); err != nil {
		return nil, err
	}
	for i, it := range snap.Items {
		amount, err := toDecimal128(it.Amount)
		if err != nil {
			return nil, fmt.Errorf("row %d amount: %w", i+1, err)
		}
		doc.Items[i] = consignmentDoc{
			Seq:         i,
			Date:        snap.ItemDate(it),
			ConNo:       it.ConNo,
			Consignee:   it.Consignee,
			Weight:      it.Weight,
			Destination: it.Destination,
			Amount:      amount,
		}
	}
	return doc, nil
}

func (d *billDoc) toBill() (*models.Bill, error) {
	b := &models.Bill{
		ID:        d.ID,
		BillDate:  d.BillDate,
		CreatedAt: d.CreatedAt,
		Items:     make([]models.ConsignmentItem, len(d.Items)),
	}
	var err error
	if b.GSTPercent, err = fromDecimal128(d.GSTPercent); err != nil {
		return nil, err
	}
	if b.GSTAmount, err = fromDecimal128(d.GSTAmount); err != nil {
		return nil, err
	}
	if b.Total, err = fromDecimal128(d.Total); err != nil {
		return nil, err
	}
	if b.GrandTotal, err = fromDecimal128(d.GrandTotal); err != nil {
		return nil, err
	}
	for i, c := range d.Items {
		amount, err := fromDecimal128(c.Amount)
		if err != nil {
			return nil, fmt.Errorf("bill %d row %d amount: %w", d.ID, i+1, err)
		}
		b.Items[i] = models.ConsignmentItem{
			BillID:      d.ID,
			Seq:         c.Seq,
			Date:        c.Date,
			ConNo:       c.ConNo,
			Consignee:   c.Consignee,
			Weight:      c.Weight,
			Destination: c.Destination,
			Amount:      amount,
		}
	}
	return b, nil
}

// CommitBill inserts the bill document with its embedded consignments
func (r *MongoLedgerRepo) CommitBill(ctx context.Context, snap models.BillSnapshot) (int64, error) {
	if err := snap.Validate(); err != nil {
		return 0, err
	}

	id, err := r.nextBillID(ctx)
	if err != nil {
		return 0, models.WrapStorage("allocate bill id", err)
	}

	doc, err := toBillDoc(id, &snap)
	if err != nil {
		return 0, models.WrapStorage("encode bill", err)
	}

	if _, err := r.DB.Collection(billsCollection).InsertOne(ctx, doc); err != nil {
		slog.Warn("bill insert failed", "bill_id", id, "date", snap.BillDate, "error", err)
		return 0, models.WrapStorage("insert bill", err)
	}

	slog.Info("bill committed", "bill_id", id, "date", snap.BillDate, "items", len(snap.Items))
	return id, nil
}

// FindBillsByDate fetches bills for one date in commit order
func (r *MongoLedgerRepo) FindBillsByDate(ctx context.Context, date string) ([]*models.Bill, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, &models.ValidationError{Field: "date", Reason: "please select a date"}
	}

	cur, err := r.DB.Collection(billsCollection).Find(ctx,
		bson.M{"bill_date": date},
		options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}),
	)
	if err != nil {
		return nil, models.WrapStorage("query bills", err)
	}
	defer cur.Close(ctx)

	out := []*models.Bill{}
	for cur.Next(ctx) {
		var d billDoc
		if err := cur.Decode(&d); err != nil {
			return nil, models.WrapStorage("decode bill", err)
		}
		if len(d.Items) == 0 {
			return nil, models.WrapStorage("load consignments", fmt.Errorf("bill %d has no consignments", d.ID))
		}
		b, err := d.toBill()
		if err != nil {
			return nil, models.WrapStorage("decode bill", err)
		}
		out = append(out, b)
	}
	if err := cur.Err(); err != nil {
		return nil, models.WrapStorage("query bills", err)
	}
	return out, nil
}

// CountConsignments sums the embedded item counts of every bill
func (r *MongoLedgerRepo) CountConsignments(ctx context.Context) (int, error) {
	cur, err := r.DB.Collection(billsCollection).Aggregate(ctx, mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   nil,
			"count": bson.M{"$sum": bson.M{"$size": "$items"}},
		}}},
	})
	if err != nil {
		return 0, models.WrapStorage("count consignments", err)
	}
	defer cur.Close(ctx)

	var res struct {
		Count int64 `bson:"count"`
	}
	if cur.Next(ctx) {
		if err := cur.Decode(&res); err != nil {
			return 0, models.WrapStorage("count consignments", err)
		}
	}
	if err := cur.Err(); err != nil {
		return 0, models.WrapStorage("count consignments", err)
	}
	return int(res.Count), nil
}
