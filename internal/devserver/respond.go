package devserver

import (
	"encoding/json"
	"errors"
	"io"
	"math/big"
	"net/http"

	"auctionauth/internal/domain"
	"auctionauth/internal/domain/types"
	"auctionauth/internal/services/auth"
)

const maxBody = 1 << 20

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func (srv *Server) writeError(w http.ResponseWriter, r *http.Request, e *apiError) {
	srv.log.Debug("request rejected", "path", r.URL.Path, "code", e.code, "err", e.msg)
	writeJSON(w, e.status, map[string]types.ErrorDetail{"detail": e.detail()})
}

// writeSigned sends v as compact sorted JSON wrapped with the server's
// signature over it.
func (srv *Server) writeSigned(w http.ResponseWriter, r *http.Request, v any) {
	msg, err := auth.Canonical(v)
	if err != nil {
		srv.log.Error("serialize response", "path", r.URL.Path, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	env := types.Envelope{Message: string(msg)}
	sig, err := srv.cipher.Sign(env.Message, srv.cfg.Key.Private)
	switch {
	case errors.Is(err, domain.ErrMessageTooLarge):
		srv.log.Warn("response too large to sign", "path", r.URL.Path, "bytes", len(msg))
	case err != nil:
		srv.log.Error("sign response", "path", r.URL.Path, "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	default:
		env.Signature = sig.String()
	}
	writeJSON(w, http.StatusOK, env)
}

// readEnvelope verifies the signed body against the caller's registered key
// and decodes the inner message into out.
func (srv *Server) readEnvelope(r *http.Request, u user, out any) *apiError {
	var env types.Envelope
	if err := decodeBody(r, &env); err != nil {
		return errBadMessage
	}
	sig, ok := new(big.Int).SetString(env.Signature, 10)
	if !ok {
		return errBadSignature
	}
	if err := srv.cipher.Verify(env.Message, sig, u.publicKey); err != nil {
		return errBadSignature
	}
	if err := json.Unmarshal([]byte(env.Message), out); err != nil {
		return errBadMessage
	}
	return nil
}

func decodeBody(r *http.Request, out any) error {
	defer r.Body.Close()
	raw, err := io.ReadAll(io.LimitReader(r.Body, maxBody))
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}
