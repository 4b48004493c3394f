package middlewarex

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"
	"github.com/rs/zerolog/log"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

func writeError(w http.ResponseWriter, status int, message string) {
	js, err := json.Marshal(map[string]string{"error": message})
	if err != nil {
		log.Error().Err(err).Msg("encode error response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(append(js, '\n'))
}
