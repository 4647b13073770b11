package server

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/gorilla/mux"

	"github.com/voidshard/gofer/pkg/api"
	"github.com/voidshard/gofer/pkg/api/http/common"
	"github.com/voidshard/gofer/pkg/structs"
)

const (
	wait = 30 * time.Second
)

type Server struct {
	addr       string
	tlsCert    string
	tlsKey     string
	debug      bool
	svc        api.API
	exit       chan os.Signal
	httpserver *http.Server
}

func NewServer(addr, tlsCert, tlsKey string, debug bool) *Server {
	return &Server{
		addr:    addr,
		tlsCert: tlsCert,
		tlsKey:  tlsKey,
		debug:   debug,
		exit:    make(chan os.Signal, 1),
	}
}

func (s *Server) ServeForever(svc api.API) error {
	s.svc = svc

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.Health).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOBS, s.Jobs).Methods(http.MethodGet, http.MethodPost)
	router.HandleFunc(common.API_JOB, s.Job).Methods(http.MethodGet, http.MethodDelete)
	router.HandleFunc(common.API_CANCEL, s.Cancel).Methods(http.MethodPatch)
	router.HandleFunc(common.API_OUTPUT, s.Output).Methods(http.MethodGet)
	router.HandleFunc(common.API_JOB_DEPS, s.JobDependencies).Methods(http.MethodGet)
	router.HandleFunc(common.API_DEPS, s.Dependencies).Methods(http.MethodPost, http.MethodDelete)
	router.HandleFunc(common.API_READY, s.Ready).Methods(http.MethodGet)
	router.HandleFunc(common.API_FINISHED, s.ClearFinished).Methods(http.MethodDelete)

	if s.debug {
		log.Println("Debug enabled, adding per-request logging middleware")
		router.Use(loggingMiddleware)
	}

	s.httpserver = &http.Server{
		Handler:      router,
		Addr:         s.addr,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}

	go func() {
		log.Println("Listening on", s.httpserver.Addr)
		var err error
		if s.tlsCert != "" && s.tlsKey != "" {
			err = s.httpserver.ListenAndServeTLS(s.tlsCert, s.tlsKey)
		} else {
			err = s.httpserver.ListenAndServe()
		}
		if err != nil {
			log.Println(err)
		}
	}()

	signal.Notify(s.exit, os.Interrupt)
	defer s.Close()
	<-s.exit

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()
	s.httpserver.Shutdown(ctx)
	return nil
}

func (s *Server) Jobs(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		s.getJobs(w, r)
	case http.MethodPost:
		s.startJob(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) startJob(w http.ResponseWriter, r *http.Request) {
	req := &structs.StartJobRequest{}
	err := unmarshalJson(w, r, req)
	if err != nil {
		return
	}

	job, err := s.svc.StartJob(req)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}

	err = json.NewEncoder(w).Encode(job)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) getJobs(w http.ResponseWriter, r *http.Request) {
	q := &structs.Query{}
	err := unmarshalQuery(w, r, q)
	if err != nil {
		return
	}

	items, err := s.svc.Jobs(q)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	if s.debug {
		log.Println(r.URL, "returned", len(items), "items")
	}

	err = json.NewEncoder(w).Encode(items)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func (s *Server) Job(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}

	switch r.Method {
	case http.MethodGet:
		job, err := s.svc.Job(id)
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		json.NewEncoder(w).Encode(job)
	case http.MethodDelete:
		err := s.svc.DeleteJob(id)
		if err != nil {
			http.Error(w, err.Error(), mapError(err))
			return
		}
		json.NewEncoder(w).Encode(&common.UpdateResponse{Updated: 1})
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) Cancel(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}

	err = s.svc.CancelJob(id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	json.NewEncoder(w).Encode(&common.UpdateResponse{Updated: 1})
}

func (s *Server) Output(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}

	out, err := s.svc.Output(id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	json.NewEncoder(w).Encode(&common.OutputResponse{JobID: id, Output: out})
}

func (s *Server) JobDependencies(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(w, r)
	if err != nil {
		return
	}

	deps, err := s.svc.Dependencies(id)
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	json.NewEncoder(w).Encode(deps)
}

func (s *Server) Dependencies(w http.ResponseWriter, r *http.Request) {
	req := &structs.DependencyRequest{}
	err := unmarshalJson(w, r, req)
	if err != nil {
		return
	}

	switch r.Method {
	case http.MethodPost:
		err = s.svc.AddDependency(req.JobID, req.DependsOn)
	case http.MethodDelete:
		err = s.svc.RemoveDependency(req.JobID, req.DependsOn)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	json.NewEncoder(w).Encode(&common.UpdateResponse{Updated: 1})
}

func (s *Server) Ready(w http.ResponseWriter, r *http.Request) {
	items, err := s.svc.ReadyJobs()
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	json.NewEncoder(w).Encode(items)
}

func (s *Server) ClearFinished(w http.ResponseWriter, r *http.Request) {
	count, err := s.svc.ClearFinished()
	if err != nil {
		http.Error(w, err.Error(), mapError(err))
		return
	}
	json.NewEncoder(w).Encode(&common.UpdateResponse{Updated: count})
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	json.NewEncoder(w).Encode(map[string]bool{"ok": true})
}

func (s *Server) Close() error {
	s.exit <- os.Interrupt
	return nil
}
