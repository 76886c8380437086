package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"transportbill/handlers"
)

// CORS middleware
func withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		// Handle preflight request
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func SetupRoutes(
	lookupHandler *handlers.LookupHandler,
	billHandler *handlers.BillHandler,
	printHandler *handlers.PrintHandler,
	draftHandler *handlers.DraftHandler,
) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(handlers.RecoverWrapper)
	r.Use(withCORS)

	// Lookup lists
	r.Get("/lookups/{category}", lookupHandler.ListValues)
	r.Post("/lookups/{category}", lookupHandler.AddValue)

	// Committed bills
	r.Get("/bills", billHandler.GetBillsByDate)
	r.Get("/bills/next-con-no", billHandler.NextConNo)
	r.Get("/bills/{id}/print", printHandler.PrintBill)

	// Working bill
	r.Route("/draft", func(r chi.Router) {
		r.Get("/", draftHandler.GetDraft)
		r.Post("/items", draftHandler.SaveItem)
		r.Put("/items/{index}", draftHandler.UpdateItem)
		r.Delete("/items/{index}", draftHandler.RemoveItem)
		r.Post("/items/{index}/edit", draftHandler.StartEdit)
		r.Get("/totals", draftHandler.Totals)
		r.Post("/reset", draftHandler.Reset)
		r.Post("/load", draftHandler.Load)
		r.Post("/copy", draftHandler.Copy)
		r.Post("/commit", draftHandler.Commit)
		r.Get("/print", draftHandler.Print)
	})

	return r
}
