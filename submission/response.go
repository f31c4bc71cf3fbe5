package submission

import (
	"encoding/json"
	"net/http"
)

// Mensagens exibidas ao usuário.
const (
	MsgTooManyRequests = "Muitos envios do seu IP. Tente novamente mais tarde."
	MsgBusy            = "Servidor ocupado. Tente novamente mais tarde."
	MsgDeliveryFailed  = "Falha ao enviar ao webhook."
	MsgInternal        = "Erro interno no servidor."
)

type Response struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(resp)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, Response{OK: false, Message: msg})
}
