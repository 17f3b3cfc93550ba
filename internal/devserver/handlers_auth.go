package devserver

import (
	"context"
	"errors"
	"math/big"
	"net/http"
	"strconv"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"

	"auctionauth/internal/domain/types"
)

type ctxKey struct{}

func (srv *Server) handlePublicKey(w http.ResponseWriter, r *http.Request) {
	pub := srv.cfg.Key.Public
	writeJSON(w, http.StatusOK, map[string]*big.Int{
		"e": pub.Exponent(),
		"n": pub.Modulus(),
	})
}

// credentials decrypts the username and password fields of a register or
// login payload.
func (srv *Server) credentials(r *http.Request) (types.Credentials, *apiError) {
	var c types.Credentials
	if err := decodeBody(r, &c); err != nil {
		return c, errBadMessage
	}
	for _, field := range []*string{&c.Username, &c.Password} {
		v, ok := new(big.Int).SetString(*field, 10)
		if !ok {
			return c, errBadCredentials
		}
		plain, err := srv.cipher.DecryptValue(v, srv.cfg.Key.Private)
		if err != nil {
			return c, errBadCredentials
		}
		*field = plain
	}
	return c, nil
}

func (srv *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	c, apiErr := srv.credentials(r)
	if apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	if apiErr := checkUsername(c.Username); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	if apiErr := checkPassword(c.Password); apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	pub, err := types.ParseKeyHalf(c.PublicKeyE, c.PublicKeyN)
	if err != nil {
		srv.writeError(w, r, errBadPublicKey)
		return
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
	if err != nil {
		srv.log.Error("hash password", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	id, ok := srv.db.addUser(user{username: c.Username, passwordHash: hash, publicKey: pub})
	if !ok {
		srv.writeError(w, r, errUsernameTaken)
		return
	}
	srv.log.Info("user registered", "user", c.Username, "id", id)
	writeJSON(w, http.StatusOK, types.StatusMessage{Status: "CREAT", Message: "OK"})
}

func (srv *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	c, apiErr := srv.credentials(r)
	if apiErr != nil {
		srv.writeError(w, r, apiErr)
		return
	}
	u, ok := srv.db.userByName(c.Username)
	if !ok || bcrypt.CompareHashAndPassword(u.passwordHash, []byte(c.Password)) != nil {
		srv.writeError(w, r, errLoginFailed)
		return
	}
	token, err := srv.issueToken(u.id)
	if err != nil {
		srv.log.Error("issue token", "err", err)
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, types.LoginResponse{AccessToken: token, TokenType: "bearer"})
}

func (srv *Server) issueToken(id int64) (string, error) {
	now := srv.now()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatInt(id, 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(srv.cfg.TokenTTL)),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(srv.secret)
}

// requireUser resolves the bearer token to a stored user.
func (srv *Server) requireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, apiErr := srv.authenticate(r)
		if apiErr != nil {
			srv.writeError(w, r, apiErr)
			return
		}
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, u)))
	})
}

func (srv *Server) authenticate(r *http.Request) (user, *apiError) {
	header := r.Header.Get("Authorization")
	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok || token == "" {
		return user{}, errNotIdentified
	}

	var claims jwt.RegisteredClaims
	_, err := jwt.ParseWithClaims(token, &claims,
		func(*jwt.Token) (any, error) { return srv.secret, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(srv.now),
	)
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return user{}, errTokenExpired
	case err != nil:
		return user{}, errTokenInvalid
	}
	if claims.Subject == "" {
		return user{}, errNoSubject
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return user{}, errBadSubject
	}
	u, ok := srv.db.user(id)
	if !ok {
		return user{}, errNotIdentified
	}
	return u, nil
}

func currentUser(r *http.Request) user {
	u, _ := r.Context().Value(ctxKey{}).(user)
	return u
}
