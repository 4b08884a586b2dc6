package handlers

import (
	"net/http"

	v1chat "github.com/varaher/prana/internal/api/v1/handlers/chat"
	v1records "github.com/varaher/prana/internal/api/v1/handlers/records"
	v1reminders "github.com/varaher/prana/internal/api/v1/handlers/reminders"
	v1reports "github.com/varaher/prana/internal/api/v1/handlers/reports"
	v1mware "github.com/varaher/prana/internal/api/v1/middleware"
	"github.com/varaher/prana/internal/services"
	"github.com/varaher/prana/pkg/httpext"

	"github.com/gorilla/mux"
)

func RegisterV1Routes(router *mux.Router, services *services.Services) {
	// v1 routes
	v1 := router.PathPrefix("/v1").Subrouter()

	// Chat relay routes
	v1chatRouter := v1.PathPrefix("/chat").Subrouter()
	v1chatRouter.Handle("/stream", v1mware.RateLimit("chat_stream")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v1chat.HandleChatStream(services.GetChatService(), w, r)
	}))).Methods("POST")
	v1chatRouter.Handle("/analyze", v1mware.RateLimit("chat_analyze")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		v1chat.HandleAnalyzeImage(services.GetChatService(), w, r)
	}))).Methods("POST")

	// Report generation; summaries read the records store, so it shares the
	// records availability contract
	v1.Handle("/reports", v1mware.RateLimit("reports")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if services.GetRecordsService() == nil {
			httpext.JsonError(w, "Records store unavailable", http.StatusServiceUnavailable)
			return
		}
		v1reports.HandleGenerate(services.GetReportService(), w, r)
	}))).Methods("POST")

	// Reminder scheduling
	v1remindersRouter := v1.PathPrefix("/reminders").Subrouter()
	v1remindersRouter.HandleFunc("", func(w http.ResponseWriter, r *http.Request) {
		v1reminders.HandleSchedule(services.GetRemindersService(), w, r)
	}).Methods("POST")
	v1remindersRouter.HandleFunc("/{userId}", func(w http.ResponseWriter, r *http.Request) {
		v1reminders.HandleList(services.GetRemindersService(), w, r)
	}).Methods("GET")
	v1remindersRouter.HandleFunc("/{userId}/{id}", func(w http.ResponseWriter, r *http.Request) {
		v1reminders.HandleCancel(services.GetRemindersService(), w, r)
	}).Methods("DELETE")

	// Records store routes; unavailable without a configured database
	registerRecordsRoutes(v1, services)
}

func registerRecordsRoutes(v1 *mux.Router, services *services.Services) {
	withRecords := func(handle func(w http.ResponseWriter, r *http.Request)) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if services.GetRecordsService() == nil {
				httpext.JsonError(w, "Records store unavailable", http.StatusServiceUnavailable)
				return
			}
			handle(w, r)
		})
	}
	writeLimit := v1mware.RateLimit("records_write")

	v1medsRouter := v1.PathPrefix("/medications").Subrouter()
	v1medsRouter.Handle("", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleAddMedication(services.GetRecordsService(), w, r)
	}))).Methods("POST")
	v1medsRouter.Handle("/user/{userId}", withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleListMedications(services.GetRecordsService(), w, r)
	})).Methods("GET")
	v1medsRouter.Handle("/{id}", withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleGetMedication(services.GetRecordsService(), w, r)
	})).Methods("GET")
	v1medsRouter.Handle("/{id}", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleUpdateMedication(services.GetRecordsService(), w, r)
	}))).Methods("PUT")
	v1medsRouter.Handle("/{id}", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleDeleteMedication(services.GetRecordsService(), w, r)
	}))).Methods("DELETE")

	v1recordsRouter := v1.PathPrefix("/records").Subrouter()
	v1recordsRouter.Handle("", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleAddRecord(services.GetRecordsService(), w, r)
	}))).Methods("POST")
	v1recordsRouter.Handle("/user/{userId}", withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleListRecords(services.GetRecordsService(), w, r)
	})).Methods("GET")
	v1recordsRouter.Handle("/{id}", withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleGetRecord(services.GetRecordsService(), w, r)
	})).Methods("GET")
	v1recordsRouter.Handle("/{id}", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleDeleteRecord(services.GetRecordsService(), w, r)
	}))).Methods("DELETE")

	v1readingsRouter := v1.PathPrefix("/readings").Subrouter()
	v1readingsRouter.Handle("", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleAddReading(services.GetRecordsService(), w, r)
	}))).Methods("POST")
	v1readingsRouter.Handle("/user/{userId}", withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleListReadings(services.GetRecordsService(), w, r)
	})).Methods("GET")
	v1readingsRouter.Handle("/{id}", withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleGetReading(services.GetRecordsService(), w, r)
	})).Methods("GET")
	v1readingsRouter.Handle("/{id}", writeLimit(withRecords(func(w http.ResponseWriter, r *http.Request) {
		v1records.HandleDeleteReading(services.GetRecordsService(), w, r)
	}))).Methods("DELETE")
}
