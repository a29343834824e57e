package router

import (
	"net/http"
	"strings"

	_ "vet-clinic/docs"
	mem "vet-clinic/internal/adapters/storage/memory"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/domain/animals"
	"vet-clinic/internal/domain/appointments"
	"vet-clinic/internal/domain/employees"
	"vet-clinic/internal/domain/payments"
	"vet-clinic/internal/domain/tutors"
	"vet-clinic/internal/middleware"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/ports/storage"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	httpSwagger "github.com/swaggo/http-swagger"
)

const defaultBasePath = "/api"

type Options struct {
	// Opcional: si viene, usa Postgres. Si no, in-memory.
	Pool *pgxpool.Pool

	Logger   logger.Logger // nil = Nop
	BasePath string        // default /api
	CORS     config.CORSConfig
}

// repos agrupa los repositorios del adapter elegido.
type repos struct {
	tutors       tutors.Repository
	animals      animals.Repository
	employees    employees.Repository
	appointments appointments.Repository
	payments     payments.Repository
	tx           storage.TxRunner
}

func memoryRepos() repos {
	s := mem.NewStore()
	return repos{
		tutors:       mem.NewTutorRepo(s),
		animals:      mem.NewAnimalRepo(s),
		employees:    mem.NewEmployeeRepo(s),
		appointments: mem.NewAppointmentRepo(s),
		payments:     mem.NewPaymentRepo(s),
		tx:           mem.NewTxManager(s),
	}
}

func postgresRepos(pool *pgxpool.Pool) repos {
	return repos{
		tutors:       pg.NewTutorRepo(pool),
		animals:      pg.NewAnimalRepo(pool),
		employees:    pg.NewEmployeeRepo(pool),
		appointments: pg.NewAppointmentRepo(pool),
		payments:     pg.NewPaymentRepo(pool),
		tx:           pg.NewTxManager(pool),
	}
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	basePath := strings.TrimRight(strings.TrimSpace(opts.BasePath), "/")
	if basePath == "" {
		basePath = defaultBasePath
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.EchoRequestID)
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))
	r.Use(middleware.CORS(opts.CORS))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	var rp repos
	if opts.Pool != nil {
		rp = postgresRepos(opts.Pool)
	} else {
		rp = memoryRepos()
	}

	// Services por módulo. Los chequeos de padre van contra el service del padre.
	tutorsSvc := tutors.NewService(rp.tutors, rp.animals, rp.tx)
	employeesSvc := employees.NewService(rp.employees, rp.appointments, rp.tx)
	animalsSvc := animals.NewService(rp.animals, tutorsSvc, rp.appointments, rp.tx)
	appointmentsSvc := appointments.NewService(rp.appointments, animalsSvc, employeesSvc, rp.payments, rp.tx)
	paymentsSvc := payments.NewService(rp.payments, appointmentsSvc, rp.tx)

	r.Route(basePath, func(api chi.Router) {
		api.NotFound(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"error":"route not found"}` + "\n"))
		})

		// Rutas por módulo
		tutors.RegisterRoutes(api, tutorsSvc, log)
		animals.RegisterRoutes(api, animalsSvc, log)
		employees.RegisterRoutes(api, employeesSvc, log)
		appointments.RegisterRoutes(api, appointmentsSvc, log)
		payments.RegisterRoutes(api, paymentsSvc, log)
	})

	return r
}
