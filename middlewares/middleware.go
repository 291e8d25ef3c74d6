package middlewares

import (
	"context"
	"net/http"
	"strings"

	"bitbucket.org/parqueoasis/cinema-tickets/config"
	"bitbucket.org/parqueoasis/cinema-tickets/helpers"
	"bitbucket.org/parqueoasis/cinema-tickets/models"
	"github.com/dgrijalva/jwt-go"
	shortuuid "github.com/lithammer/shortuuid/v3"
	jwtmiddleware "github.com/mfuentesg/go-jwtmiddleware"
	"github.com/mitchellh/mapstructure"
	log "github.com/sirupsen/logrus"
	"github.com/urfave/negroni"
)

type contextKey string

const (
	userContextKey   contextKey = "user"
	loggerContextKey contextKey = "logger"
)

func jwtErrorHandler(w http.ResponseWriter, _ *http.Request, err error) {
	r := &ResponseWriter{Writer: w}
	if err != nil && err.Error() == "Token is expired" {
		r.Error(http.StatusUnauthorized, "unauthorized", WithErrorScope("token"), WithErrorType(1))
		return
	}
	r.Error(http.StatusUnauthorized, "unauthorized", WithErrorScope("token"))
}

func NewJWTMiddleware(secret []byte) *jwtmiddleware.Middleware {
	return jwtmiddleware.New(
		jwtmiddleware.WithErrorHandler(jwtErrorHandler),
		jwtmiddleware.WithSigningMethod(jwt.SigningMethodHS256),
		jwtmiddleware.WithSignKey(secret),
		jwtmiddleware.WithUserProperty("_jwt-token"),
	)
}

// LoggerRequest logs the request and hands a request scoped logger to the
// handlers through the request context.
func LoggerRequest(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
	requestID := r.Header.Get("X-Request-ID")
	if requestID == "" {
		requestID = shortuuid.New()
	}
	requestLogger := config.GetLogger().WithFields(log.Fields{"request_id": requestID, "query": r.URL.Query(), "host": r.Host, "url": r.URL.Path, "method": r.Method})
	requestLogger.Info("logger_request")
	ctx := context.WithValue(r.Context(), loggerContextKey, requestLogger)
	next(rw, r.WithContext(ctx))
}

func LoggerFromContext(ctx context.Context) *log.Entry {
	if l, ok := ctx.Value(loggerContextKey).(*log.Entry); ok {
		return l
	}
	return config.GetLogger()
}

// UserMiddleware decodes the user claims of a bearer token, when there is
// one, into the request context. Claims that do not decode leave the request
// without a user. Signature checks are left to the JWT middleware on
// protected routes.
func UserMiddleware() negroni.HandlerFunc {
	return negroni.HandlerFunc(func(rw http.ResponseWriter, r *http.Request, next http.HandlerFunc) {
		authorization := r.Header.Get("Authorization")
		if len(authorization) == 0 {
			authorization = r.URL.Query().Get("token")
			if authorization != "" {
				authorization = "Bearer " + authorization
				r.Header.Set("Authorization", authorization)
			}
		}
		token := strings.Split(authorization, " ")
		if len(token) != 2 {
			next(rw, r)
			return
		}

		data, _ := helpers.ParserTokenUnverified(token[1])
		tokenParse, ok := data["u"].(map[string]interface{})
		if !ok {
			next(rw, r)
			return
		}

		userInfo := models.InfoUser{}
		_data := map[string]interface{}{
			"ID":        tokenParse["i"],
			"Email":     tokenParse["email"],
			"Firstname": tokenParse["firstName"],
			"Lastname":  tokenParse["lastName"],
			"Read":      tokenParse["read"],
			"Roles":     tokenParse["r"],
		}
		decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
			WeaklyTypedInput: true,
			Result:           &userInfo,
		})
		if err == nil {
			err = decoder.Decode(_data)
		}
		if err != nil {
			LoggerFromContext(r.Context()).WithError(err).Warn("could not decode token claims")
			next(rw, r)
			return
		}

		if r.Method != http.MethodGet && userInfo.Read {
			a := &ResponseWriter{Writer: rw}
			a.Error(http.StatusUnauthorized, "unauthorized", WithErrorScope("token"))
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, userInfo)
		next(rw, r.WithContext(ctx))
	})
}

func UserFromContext(ctx context.Context) (models.InfoUser, bool) {
	userInfo, ok := ctx.Value(userContextKey).(models.InfoUser)
	return userInfo, ok
}
