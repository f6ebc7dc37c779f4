package auth_test

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"fmt"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/MicahParks/jwkset"
	"github.com/golang-jwt/jwt/v5"
	"github.com/peeringlatam/network-planner/internal/auth"
	"github.com/peeringlatam/network-planner/internal/config"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("authentication", func() {
	Context("sso authentication", func() {
		It("successfully validates the token", func() {
			sToken, keyFn := generateRS256Token(jwt.MapClaims{
				"preferred_username": "batman",
				"email":              "batman@gothamcity.com",
			})
			authenticator, err := auth.NewSSOAuthenticatorWithKeyFn(keyFn)
			Expect(err).To(BeNil())

			user, err := authenticator.Authenticate(sToken)
			Expect(err).To(BeNil())
			Expect(user.Username).To(Equal("batman"))
			Expect(user.Email).To(Equal("batman@gothamcity.com"))
		})

		It("falls back to the subject", func() {
			sToken, keyFn := generateRS256Token(jwt.MapClaims{"sub": "robin"})
			authenticator, err := auth.NewSSOAuthenticatorWithKeyFn(keyFn)
			Expect(err).To(BeNil())

			user, err := authenticator.Authenticate(sToken)
			Expect(err).To(BeNil())
			Expect(user.Username).To(Equal("robin"))
		})

		It("fails to authenticate -- no username", func() {
			sToken, keyFn := generateRS256Token(jwt.MapClaims{"email": "nobody@example.com"})
			authenticator, err := auth.NewSSOAuthenticatorWithKeyFn(keyFn)
			Expect(err).To(BeNil())

			_, err = authenticator.Authenticate(sToken)
			Expect(err).ToNot(BeNil())
		})

		It("fails to authenticate -- wrong signing method", func() {
			token := jwt.NewWithClaims(jwt.SigningMethodHS256, withTimes(jwt.MapClaims{"sub": "joker"}))
			sToken, err := token.SignedString([]byte("secret"))
			Expect(err).To(BeNil())

			authenticator, err := auth.NewSSOAuthenticatorWithKeyFn(func(*jwt.Token) (any, error) { return []byte("secret"), nil })
			Expect(err).To(BeNil())

			_, err = authenticator.Authenticate(sToken)
			Expect(err).ToNot(BeNil())
		})

		It("validates the token against the keys served by the JWK url", func() {
			privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
			Expect(err).To(BeNil())

			jwk, err := jwkset.NewJWKFromKey(privateKey.Public(), jwkset.JWKOptions{
				Metadata: jwkset.JWKMetadataOptions{KID: "planner-test", ALG: jwkset.AlgRS256, USE: jwkset.UseSig},
			})
			Expect(err).To(BeNil())

			storage := jwkset.NewMemoryStorage()
			Expect(storage.KeyWrite(context.Background(), jwk)).To(Succeed())
			raw, err := storage.JSONPublic(context.Background())
			Expect(err).To(BeNil())

			jwks := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				_, _ = w.Write(raw)
			}))
			defer jwks.Close()

			token := jwt.NewWithClaims(jwt.SigningMethodRS256, withTimes(jwt.MapClaims{"preferred_username": "alfred"}))
			token.Header["kid"] = "planner-test"
			sToken, err := token.SignedString(privateKey)
			Expect(err).To(BeNil())

			authenticator, err := auth.NewSSOAuthenticator(context.Background(), jwks.URL)
			Expect(err).To(BeNil())

			user, err := authenticator.Authenticate(sToken)
			Expect(err).To(BeNil())
			Expect(user.Username).To(Equal("alfred"))
		})

		It("requires a JWK url", func() {
			_, err := auth.NewAuthenticator(config.Auth{AuthenticationType: auth.SSOAuthentication})
			Expect(err).ToNot(BeNil())
		})
	})

	Context("local authentication", func() {
		It("validates tokens it issued", func() {
			authenticator, err := auth.NewLocalAuthenticator("s3cr3t")
			Expect(err).To(BeNil())

			sToken, err := authenticator.IssueToken("alice", "alice@example.com", time.Hour)
			Expect(err).To(BeNil())

			user, err := authenticator.Authenticate(sToken)
			Expect(err).To(BeNil())
			Expect(user.Username).To(Equal("alice"))
			Expect(user.Email).To(Equal("alice@example.com"))
		})

		It("rejects tokens signed with another secret", func() {
			other, err := auth.NewLocalAuthenticator("other")
			Expect(err).To(BeNil())
			sToken, err := other.IssueToken("alice", "", time.Hour)
			Expect(err).To(BeNil())

			authenticator, err := auth.NewLocalAuthenticator("s3cr3t")
			Expect(err).To(BeNil())
			_, err = authenticator.Authenticate(sToken)
			Expect(err).ToNot(BeNil())
		})

		It("rejects expired tokens", func() {
			authenticator, err := auth.NewLocalAuthenticator("s3cr3t")
			Expect(err).To(BeNil())
			sToken, err := authenticator.IssueToken("alice", "", -time.Minute)
			Expect(err).To(BeNil())

			_, err = authenticator.Authenticate(sToken)
			Expect(err).ToNot(BeNil())
		})

		It("requires a secret", func() {
			_, err := auth.NewLocalAuthenticator("")
			Expect(err).ToNot(BeNil())
		})
	})

	Context("middleware", func() {
		var authenticator *auth.LocalAuthenticator

		BeforeEach(func() {
			var err error
			authenticator, err = auth.NewLocalAuthenticator("s3cr3t")
			Expect(err).To(BeNil())
		})

		do := func(h http.Handler, token string) int {
			ts := httptest.NewServer(h)
			defer ts.Close()

			req, err := http.NewRequest(http.MethodGet, ts.URL, nil)
			Expect(err).To(BeNil())
			if token != "" {
				req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
			}

			resp, err := http.DefaultClient.Do(req)
			Expect(err).To(BeNil())
			defer resp.Body.Close()
			return resp.StatusCode
		}

		It("lets anonymous requests through", func() {
			h := &handler{}
			Expect(do(authenticator.Authenticator(h), "")).To(Equal(http.StatusOK))
			Expect(h.user).To(BeNil())
		})

		It("sets the user in the context", func() {
			sToken, err := authenticator.IssueToken("alice", "", time.Hour)
			Expect(err).To(BeNil())

			h := &handler{}
			Expect(do(authenticator.Authenticator(h), sToken)).To(Equal(http.StatusOK))
			Expect(h.user).NotTo(BeNil())
			Expect(h.user.Username).To(Equal("alice"))
		})

		It("rejects invalid tokens", func() {
			Expect(do(authenticator.Authenticator(&handler{}), "garbage")).To(Equal(http.StatusUnauthorized))
		})

		It("requires a user on protected routes", func() {
			Expect(do(authenticator.Authenticator(auth.RequireUser(&handler{})), "")).To(Equal(http.StatusUnauthorized))

			none, err := auth.NewNoneAuthenticator()
			Expect(err).To(BeNil())
			Expect(do(none.Authenticator(auth.RequireUser(&handler{})), "")).To(Equal(http.StatusOK))
		})
	})
})

type handler struct {
	user *auth.User
}

func (h *handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if u, found := auth.UserFromContext(r.Context()); found {
		h.user = &u
	}
	w.WriteHeader(200)
}

func withTimes(claims jwt.MapClaims) jwt.MapClaims {
	claims["iat"] = time.Now().Unix()
	claims["exp"] = time.Now().Add(24 * time.Hour).Unix()
	return claims
}

func generateRS256Token(claims jwt.MapClaims) (string, func(t *jwt.Token) (any, error)) {
	privateKey, err := rsa.GenerateKey(rand.Reader, 2048)
	Expect(err).To(BeNil())

	token := jwt.NewWithClaims(jwt.SigningMethodRS256, withTimes(claims))
	ss, err := token.SignedString(privateKey)
	Expect(err).To(BeNil())

	return ss, func(t *jwt.Token) (any, error) {
		return privateKey.Public(), nil
	}
}
