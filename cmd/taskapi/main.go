package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"text/tabwriter"

	"github.com/go-kit/kit/log"
	kitprometheus "github.com/go-kit/kit/metrics/prometheus"
	consulsd "github.com/go-kit/kit/sd/consul"
	"github.com/gorilla/mux"
	"github.com/hashicorp/consul/api"
	"github.com/oklog/oklog/pkg/group"
	stdprometheus "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/twinj/uuid"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	libgorm "gorm.io/gorm"

	"taskapi/authsvc/pkg/authendpoint"
	"taskapi/authsvc/pkg/authservice"
	"taskapi/authsvc/pkg/authtransport"
	"taskapi/tasksvc"
	taskgorm "taskapi/tasksvc/db/gorm"
	"taskapi/tasksvc/pkg/taskendpoint"
	"taskapi/tasksvc/pkg/taskservice"
	"taskapi/tasksvc/pkg/tasktransport"
	"taskapi/usersvc"
	usergorm "taskapi/usersvc/db/gorm"
	"taskapi/usersvc/pkg/userendpoint"
	"taskapi/usersvc/pkg/userservice"
	"taskapi/usersvc/pkg/usertransport"
)

func main() {
	fs := flag.NewFlagSet("taskapi", flag.ExitOnError)
	var (
		httpAddr    = fs.String("http.addr", getEnv("HTTP_ADDR", ":8000"), "HTTP (JSON) listen address")
		consulAddr  = fs.String("consul.addr", getEnv("CONSUL_ADDR", ""), "Consul agent address (empty disables registration)")
		databaseURL = fs.String("database.url", getEnv("DATABASE_URL", ""), "Database URL (empty falls back to a local sqlite file)")
	)

	fs.Usage = usageFor(fs, os.Args[0]+" [flags]")
	fs.Parse(os.Args[1:])

	var logger log.Logger
	{
		logger = log.NewLogfmtLogger(os.Stderr)
		logger = log.With(logger, "ts", log.DefaultTimestampUTC)
		logger = log.With(logger, "caller", log.DefaultCaller)
	}

	// The signing secret has no default; it comes from the environment or
	// a secret store that populates it.
	secret := []byte(os.Getenv("JWT_SECRET"))
	if len(secret) == 0 {
		logger.Log("err", "JWT_SECRET is not set")
		os.Exit(1)
	}

	var db *libgorm.DB
	var err error
	{
		if *databaseURL != "" {
			db, err = libgorm.Open(postgres.Open(*databaseURL), &libgorm.Config{})
		} else {
			db, err = libgorm.Open(sqlite.Open("taskapi.db"), &libgorm.Config{})
		}
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
	}

	db.AutoMigrate(&usersvc.User{}, &tasksvc.Task{})

	var registrar *consulsd.Registrar
	if *consulAddr != "" {
		consulConfig := api.DefaultConfig()
		consulConfig.Address = *consulAddr

		consulClient, err := api.NewClient(consulConfig)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}

		host, port, err := net.SplitHostPort(*httpAddr)
		if err != nil {
			logger.Log("err", err)
			os.Exit(1)
		}
		if host == "" {
			host = "localhost"
		}

		p, _ := strconv.Atoi(port)
		asr := &api.AgentServiceRegistration{
			ID:      uuid.NewV4().String(),
			Name:    "taskapi",
			Address: host,
			Port:    p,
		}

		registrar = consulsd.NewRegistrar(consulsd.NewClient(consulClient), asr, logger)
		registrar.Register()
		defer registrar.Deregister()
	}

	fieldKeys := []string{"method"}

	userRepository := usergorm.NewUserRepository(db)
	var userSvc userservice.Service
	{
		userSvc = userservice.New(userRepository, log.With(logger, "component", "usersvc"))
		userSvc = userservice.InstrumentingMiddleware(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "user_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "user_service",
				Name:      "request_latency_seconds",
				Help:      "Total duration of requests in seconds.",
			}, fieldKeys),
		)(userSvc)
	}

	var authSvc authservice.Service
	{
		authSvc = authservice.New(authservice.NewTokenizer(secret), userRepository, log.With(logger, "component", "authsvc"))
		authSvc = authservice.InstrumentingMiddleware(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "auth_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "auth_service",
				Name:      "request_latency_seconds",
				Help:      "Total duration of requests in seconds.",
			}, fieldKeys),
		)(authSvc)
	}

	taskRepository := taskgorm.NewTaskRepository(db)
	var taskSvc taskservice.Service
	{
		taskSvc = taskservice.New(taskRepository, log.With(logger, "component", "tasksvc"))
		taskSvc = taskservice.InstrumentingMiddleware(
			kitprometheus.NewCounterFrom(stdprometheus.CounterOpts{
				Namespace: "api",
				Subsystem: "task_service",
				Name:      "request_count",
				Help:      "Number of requests received.",
			}, fieldKeys),
			kitprometheus.NewSummaryFrom(stdprometheus.SummaryOpts{
				Namespace: "api",
				Subsystem: "task_service",
				Name:      "request_latency_seconds",
				Help:      "Total duration of requests in seconds.",
			}, fieldKeys),
		)(taskSvc)
	}

	var (
		userEndpoints = userendpoint.New(userSvc, logger)
		authEndpoints = authendpoint.New(authSvc, logger)
		taskEndpoints = taskendpoint.New(taskSvc, logger)
	)

	r := mux.NewRouter()
	{
		userHTTPHandler := usertransport.NewHTTPHandler(userEndpoints, logger)
		r.PathPrefix("/register").Handler(userHTTPHandler)
		r.PathPrefix("/users").Handler(userHTTPHandler)
		r.PathPrefix("/login").Handler(authtransport.NewHTTPHandler(authEndpoints, logger))
		r.PathPrefix("/tasks").Handler(tasktransport.NewHTTPHandler(taskEndpoints, secret, logger))
		r.Methods("GET").Path("/metrics").Handler(promhttp.Handler())
	}

	var g group.Group
	{
		httpListener, err := net.Listen("tcp", *httpAddr)
		if err != nil {
			logger.Log("transport", "HTTP", "during", "Listen", "err", err)
			os.Exit(1)
		}
		g.Add(func() error {
			logger.Log("transport", "HTTP", "addr", *httpAddr)
			return http.Serve(httpListener, r)
		}, func(error) {
			httpListener.Close()
		})
	}
	{
		// This function just sits and waits for ctrl-C.
		cancelInterrupt := make(chan struct{})
		g.Add(func() error {
			c := make(chan os.Signal, 1)
			signal.Notify(c, syscall.SIGINT, syscall.SIGTERM)
			select {
			case sig := <-c:
				return fmt.Errorf("received signal %s", sig)
			case <-cancelInterrupt:
				return nil
			}
		}, func(error) {
			close(cancelInterrupt)
		})
	}
	logger.Log("exit", g.Run())
}

func usageFor(fs *flag.FlagSet, short string) func() {
	return func() {
		fmt.Fprintf(os.Stderr, "USAGE\n")
		fmt.Fprintf(os.Stderr, "  %s\n", short)
		fmt.Fprintf(os.Stderr, "\n")
		fmt.Fprintf(os.Stderr, "FLAGS\n")
		w := tabwriter.NewWriter(os.Stderr, 0, 2, 2, ' ', 0)
		fs.VisitAll(func(f *flag.Flag) {
			fmt.Fprintf(w, "\t-%s %s\t%s\n", f.Name, f.DefValue, f.Usage)
		})
		w.Flush()
		fmt.Fprintf(os.Stderr, "\n")
	}
}

func getEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		value = fallback
	}
	return value
}
