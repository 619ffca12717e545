package server

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/pressly/lg"
	"github.com/sirupsen/logrus"

	"github.com/rawpix/rawpix"
)

var (
	app     *Server
	respond = NewResponder()
)

type Server struct {
	Config    *Config
	Codec     rawpix.Codec
	Extractor *rawpix.Extractor
}

// New builds a server around a raw codec. The codec is injected so the
// handlers can be exercised against a scripted implementation.
func New(conf *Config, codec rawpix.Codec) *Server {
	app = &Server{Config: conf, Codec: codec}
	return app
}

func (srv *Server) Configure() (err error) {
	if err := srv.Config.Apply(); err != nil {
		return err
	}
	if err := srv.Config.SetupStatsD(); err != nil {
		return err
	}

	srv.Extractor = rawpix.NewExtractor(srv.Codec)
	return nil
}

// Close signals to the server that it should deny new requests and finish
// up requests in progress.
func (srv *Server) Close() {
	lg.Infof("closing server..")
}

// Shutdown will release other resources and halt the server.
func (srv *Server) Shutdown() {
	lg.Infof("server shutdown.")
}

func (srv *Server) NewRouter() http.Handler {
	cf := srv.Config

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)

	lg.DefaultLogger.Formatter = &logrus.TextFormatter{}
	r.Use(lg.RequestLogger(lg.DefaultLogger))
	r.Use(lg.PrintPanics)

	r.Use(middleware.ThrottleBacklog(cf.Limits.MaxRequests, cf.Limits.BacklogSize, cf.Limits.BacklogTimeout))
	r.Use(middleware.Timeout(cf.Limits.RequestTimeout))

	r.Use(middleware.Heartbeat("/ping"))

	if cf.Profiler {
		r.Mount("/debug", middleware.Profiler())
	}

	r.Get("/", Index)

	r.Route("/raw", func(r chi.Router) {
		cors := cors.New(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
			ExposedHeaders:   []string{"X-Meta-Width", "X-Meta-Height"},
			AllowCredentials: true,
			MaxAge:           300,
		})
		r.Use(cors.Handler)

		r.With(trackRoute("rawInfo")).Get("/info", GetRawInfo)
		r.With(trackRoute("rawThumbnail")).Get("/thumbnail", GetThumbnail)
		r.With(trackRoute("rawPreview")).Get("/preview", GetPreview)
	})

	return r
}

func Index(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(200)
	w.Write([]byte(`.`))
}
