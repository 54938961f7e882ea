package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/jsphweid/chordshift/constants"
	"github.com/jsphweid/chordshift/logging"
	"github.com/jsphweid/chordshift/model"
	"github.com/jsphweid/chordshift/render"
	"github.com/jsphweid/chordshift/sheet"
	"github.com/rs/cors"
	"github.com/spf13/cobra"
)

const maxRequestBytes = 1 << 20

var port int

func init() {
	serveCmd.Flags().IntVarP(&port, "port", "p", constants.GetPort(), "port to listen on")
	rootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serves the transposer over HTTP",
	Long:  `Serves POST /transpose, POST /shifts and GET /health.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve(port)
	},
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logging.Warn("response_encode_failed", "error", err)
	}
}

func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if status >= http.StatusInternalServerError {
		logging.ErrorContext(r.Context(), "request_failed", "status", status, "error", err)
	} else {
		logging.LoggerFromContext(r.Context()).Warn("request_failed", "status", status, "error", err)
	}
	writeJSON(w, status, model.ErrorResponse{Error: err.Error()})
}

func decode(w http.ResponseWriter, r *http.Request, v interface{}) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("could not decode request body: %w", err)
	}
	return nil
}

func statusFor(err error) int {
	if errors.Is(err, render.ErrLineTooLong) || errors.Is(err, render.ErrInvalidEncoding) || errors.Is(err, sheet.ErrNoChords) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

func HandleTranspose(w http.ResponseWriter, r *http.Request) {
	var input model.TransposeRequestBody
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	sh := sheet.New(sheet.Options{
		Chorus: true,
		Render: render.Options{
			Shift:    input.Shift,
			Flags:    input.Flags(),
			MaxWidth: constants.GetMaxWidth(),
			Logger:   logging.LoggerFromContext(r.Context()),
		},
	})

	var out strings.Builder
	if err := sh.Process(strings.NewReader(input.Text), &out); err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	res := model.TransposeResponse{Id: uuid.New().String(), Output: out.String()}
	session := sh.Session()
	if key, ok := session.Key(); ok {
		name := session.Table().Name(key)
		res.Key = &name
	}
	writeJSON(w, http.StatusOK, res)
}

func HandleShifts(w http.ResponseWriter, r *http.Request) {
	var input model.ShiftsRequestBody
	if err := decode(w, r, &input); err != nil {
		writeError(w, r, http.StatusBadRequest, err)
		return
	}

	flags := model.RenderFlags{}
	if input.Latin {
		flags.Locale = model.LocaleLatin
	}
	sh := sheet.New(sheet.Options{Render: render.Options{Flags: flags}})
	shifts, err := sh.Shifts(strings.NewReader(input.Text))
	if err != nil {
		writeError(w, r, statusFor(err), err)
		return
	}

	key, _ := sh.Session().Key()
	writeJSON(w, http.StatusOK, model.ShiftsResponse{
		Id:     uuid.New().String(),
		Key:    sh.Session().Table().Name(key),
		Shifts: shifts,
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func NewRouter() http.Handler {
	router := mux.NewRouter().StrictSlash(true)
	router.HandleFunc("/transpose", HandleTranspose).Methods("POST")
	router.HandleFunc("/shifts", HandleShifts).Methods("POST")
	router.HandleFunc("/health", handleHealth).Methods("GET")
	return logging.CombinedMiddleware(cors.Default().Handler(router))
}

func serve(port int) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", port),
		Handler:           NewRouter(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errc := make(chan error, 1)
	go func() {
		logging.ServerStartup("http", port)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	logging.Info("server_shutdown", "port", port)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
