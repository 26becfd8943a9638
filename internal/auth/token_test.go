package auth_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	apperrors "github.com/frahmantamala/finance-tracker/internal"
	"github.com/frahmantamala/finance-tracker/internal/auth"
)

var secret = strings.Repeat("k", 32)

var _ = Describe("JWTTokenCodec", func() {
	var codec *auth.JWTTokenCodec

	BeforeEach(func() {
		codec = auth.NewJWTTokenCodec(secret, time.Hour)
	})

	It("round trips the user identity", func() {
		token, expiresAt, err := codec.Issue(42, "a@x.com")
		Expect(err).NotTo(HaveOccurred())
		Expect(expiresAt).To(BeTemporally("~", time.Now().Add(time.Hour), 5*time.Second))

		claims, err := codec.Verify(token)
		Expect(err).NotTo(HaveOccurred())
		Expect(claims.UserID).To(Equal(int64(42)))
		Expect(claims.Email).To(Equal("a@x.com"))
		Expect(claims.Subject).To(Equal("42"))
	})

	It("reports garbage as malformed", func() {
		_, err := codec.Verify("not-a-token")
		Expect(err).To(MatchError(auth.ErrTokenMalformed))
	})

	It("reports expiry", func() {
		expired := auth.NewJWTTokenCodec(secret, -time.Minute)
		token, _, err := expired.Issue(1, "a@x.com")
		Expect(err).NotTo(HaveOccurred())

		_, err = codec.Verify(token)
		Expect(err).To(MatchError(auth.ErrTokenExpired))
	})

	It("reports a foreign signature", func() {
		other := auth.NewJWTTokenCodec(strings.Repeat("z", 32), time.Hour)
		token, _, err := other.Issue(1, "a@x.com")
		Expect(err).NotTo(HaveOccurred())

		_, err = codec.Verify(token)
		Expect(err).To(MatchError(auth.ErrTokenSignatureInvalid))
	})

	It("refuses other algorithms", func() {
		claims := &auth.Claims{
			UserID: 1,
			RegisteredClaims: jwt.RegisteredClaims{
				ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			},
		}
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte(secret))
		Expect(err).NotTo(HaveOccurred())

		_, err = codec.Verify(token)
		Expect(err).To(MatchError(auth.ErrInvalidToken))
	})

	It("requires an expiry claim", func() {
		token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, &auth.Claims{UserID: 1}).SignedString([]byte(secret))
		Expect(err).NotTo(HaveOccurred())

		_, err = codec.Verify(token)
		Expect(err).To(HaveOccurred())
	})
})

var _ = Describe("IdentityMiddleware", func() {
	var (
		codec      *auth.JWTTokenCodec
		middleware *auth.IdentityMiddleware
		seenUserID int64
		seenOK     bool
	)

	probe := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seenUserID, seenOK = apperrors.UserIDFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	serve := func(h http.Handler, header string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/goals", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	BeforeEach(func() {
		codec = auth.NewJWTTokenCodec(secret, time.Hour)
		middleware = auth.NewIdentityMiddleware(codec)
		seenUserID, seenOK = 0, false
	})

	It("attaches the caller for a valid token", func() {
		token, _, _ := codec.Issue(9, "a@x.com")
		rec := serve(middleware.Identify(probe), "bearer "+token)
		Expect(rec.Code).To(Equal(http.StatusNoContent))
		Expect(seenOK).To(BeTrue())
		Expect(seenUserID).To(Equal(int64(9)))
	})

	It("proceeds anonymously without a header or with a bad token", func() {
		Expect(serve(middleware.Identify(probe), "").Code).To(Equal(http.StatusNoContent))
		Expect(seenOK).To(BeFalse())

		Expect(serve(middleware.Identify(probe), "Bearer junk").Code).To(Equal(http.StatusNoContent))
		Expect(seenOK).To(BeFalse())
	})

	It("rejects anonymous callers where identity is required", func() {
		rec := serve(middleware.Identify(middleware.RequireUser(probe)), "Bearer junk")
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
		Expect(rec.Body.String()).To(ContainSubstring(`"success":false`))
		Expect(rec.Body.String()).To(ContainSubstring(string(apperrors.ErrCodeUnauthenticated)))
	})
})
