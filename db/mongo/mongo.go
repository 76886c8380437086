package mongo

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type MongoDB struct {
	Client   *mongo.Client
	Ctx      context.Context
	Cancel   context.CancelFunc
	URL      string
	Database string
}

func NewMongoDB(url, database string) *MongoDB {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	return &MongoDB{
		Ctx:      ctx,
		Cancel:   cancel,
		URL:      url,
		Database: database,
	}
}

func (m *MongoDB) Connect() error {
	client, err := mongo.Connect(m.Ctx, options.Client().ApplyURI(m.URL))
	if err != nil {
		return err
	}
	m.Client = client
	return m.Client.Ping(m.Ctx, nil)
}

// DB returns the configured application database.
func (m *MongoDB) DB() *mongo.Database {
	return m.Client.Database(m.Database)
}

func (m *MongoDB) Disconnect() error {
	defer m.Cancel()
	if m.Client == nil {
		return nil
	}
	return m.Client.Disconnect(context.Background())
}

func (m *MongoDB) GetContext() context.Context {
	return m.Ctx
}
