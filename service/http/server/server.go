// Package server serves the simpl engine over HTTP: an HTML form for
// interactive use and a JSON API for running and compiling programs.
package server

import (
	"context"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/ioutil"
	"net/http"
	"time"

	"simpl/engine/interpreter"
	"simpl/engine/lexer"
	"simpl/engine/parser"
	"simpl/instance"
	"simpl/lib/timer"

	"github.com/buger/jsonparser"
	"github.com/gorilla/mux"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

//go:embed server.html
var page string

var pageTemplate = template.Must(template.New("page").Parse(page))

const placeholder = "Results will appear here..."

type server struct {
	instance    instance.Instance
	evalTimeout time.Duration
}

func NewServer(inst instance.Instance, evalTimeout time.Duration) server {
	return server{instance: inst, evalTimeout: evalTimeout}
}

func (s server) SetHandlers(router *mux.Router) {
	router.HandleFunc("/", s.Page).Methods(http.MethodGet)
	router.HandleFunc("/", s.Submit).Methods(http.MethodPost)
	router.HandleFunc("/run", s.Run).Methods(http.MethodPost)
	router.HandleFunc("/compile", s.Compile).Methods(http.MethodPost)
	router.HandleFunc("/session/{id}", s.EndSession).Methods(http.MethodDelete)
}

type pageData struct {
	Submission string
	Evaluation string
}

func (s server) render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := pageTemplate.Execute(w, data); err != nil {
		s.instance.Logger.Error("failed to render page", zap.Error(err))
	}
}

func (s server) Page(w http.ResponseWriter, req *http.Request) {
	s.render(w, pageData{Evaluation: placeholder})
}

// Submit runs the program posted by the form and renders its result, or the
// error that stopped it, below the program.
func (s server) Submit(w http.ResponseWriter, req *http.Request) {
	if err := req.ParseForm(); err != nil {
		http.Error(w, fmt.Sprintf("invalid form: %v", err), http.StatusBadRequest)
		return
	}
	submission := req.PostForm.Get("submission")
	ctx, cancel := context.WithTimeout(req.Context(), s.evalTimeout)
	defer cancel()
	data := pageData{Submission: submission}
	result, err := s.instance.Executor.RunProgram(ctx, submission, mo.None[*interpreter.Env]())
	if err != nil {
		data.Evaluation = "Error: " + err.Error()
	} else {
		data.Evaluation = result.String()
	}
	s.render(w, data)
}

type runResponse struct {
	Result int32            `json:"result"`
	Env    map[string]int32 `json:"env"`
}

type compileResponse struct {
	Program string `json:"program"`
}

type errorResponse struct {
	Error string           `json:"error"`
	Env   map[string]int32 `json:"env,omitempty"`
}

func readRequest(req *http.Request) ([]byte, error) {
	defer req.Body.Close()
	return ioutil.ReadAll(req.Body)
}

// parseRequest reads the required "source" and the optional "session" string
// fields of a JSON request.
func parseRequest(data []byte) (source string, session string, err error) {
	source, err = jsonparser.GetString(data, "source")
	if err != nil {
		return "", "", fmt.Errorf("field 'source': %w", err)
	}
	session, err = jsonparser.GetString(data, "session")
	if err == jsonparser.KeyPathNotFoundError {
		return source, "", nil
	}
	if err != nil {
		return "", "", fmt.Errorf("field 'session': %w", err)
	}
	return source, session, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// statusOf maps a failed run to the HTTP status reported for it.
func statusOf(err error) int {
	var lexErr *lexer.LexError
	var parseErr *parser.ParseError
	var undefined *interpreter.UndefinedVariableError
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout
	case errors.As(err, &lexErr), errors.As(err, &parseErr):
		return http.StatusBadRequest
	case errors.As(err, &undefined):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// Run evaluates a program. With a session, the program sees the variables left
// by earlier programs of the session and its own bindings are kept, even
// when it fails.
func (s server) Run(w http.ResponseWriter, req *http.Request) {
	data, err := readRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	source, sessionID, err := parseRequest(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	ctx, cancel := context.WithTimeout(req.Context(), s.evalTimeout)
	defer cancel()

	carried := mo.None[*interpreter.Env]()
	if sessionID != "" {
		env, err := s.instance.Sessions.Load(ctx, sessionID)
		if err != nil {
			s.instance.Logger.Error("failed to load session", zap.String("session", sessionID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
		carried = mo.Some(env)
	}
	result, runErr := s.instance.Executor.RunProgram(ctx, source, carried)
	timer.Mark(ctx, "server.run")
	if sessionID != "" {
		// the run may have timed out, the save must not
		if err = s.instance.Sessions.Save(context.Background(), sessionID, result.Env); err != nil {
			s.instance.Logger.Error("failed to save session", zap.String("session", sessionID), zap.Error(err))
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
			return
		}
	}
	if runErr != nil {
		s.instance.Logger.Warn("program failed", zap.Error(runErr))
		resp := errorResponse{Error: runErr.Error()}
		if result.Env != nil {
			resp.Env = result.Env.Snapshot()
		}
		writeJSON(w, statusOf(runErr), resp)
		return
	}
	writeJSON(w, http.StatusOK, runResponse{Result: result.Value, Env: result.Env.Snapshot()})
}

// Compile returns the C program equivalent to the posted source.
func (s server) Compile(w http.ResponseWriter, req *http.Request) {
	data, err := readRequest(req)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	source, _, err := parseRequest(data)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fmt.Sprintf("invalid request: %v", err)})
		return
	}
	program, err := s.instance.Executor.CompileProgram(req.Context(), source)
	if err != nil {
		s.instance.Logger.Warn("compile failed", zap.Error(err))
		writeJSON(w, statusOf(err), errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, compileResponse{Program: program})
}

// EndSession forgets the variables of a session.
func (s server) EndSession(w http.ResponseWriter, req *http.Request) {
	id := mux.Vars(req)["id"]
	if err := s.instance.Sessions.Delete(req.Context(), id); err != nil {
		s.instance.Logger.Error("failed to delete session", zap.String("session", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
