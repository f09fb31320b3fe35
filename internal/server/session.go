package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/rs/xid"

	"treehealth/internal/domain/service/dashboard"
	"treehealth/pkg/contextx"
	"treehealth/pkg/logx"
)

const (
	SessionCookie = "session"

	sessionCleanupFactor = 2
)

// Session дашборд одного браузера: текущий выбор и последний показанный
// график.
type Session struct {
	ID         string
	controller *dashboard.Controller
	view       *sessionView
}

// sessionView хранит последний опубликованный график.
type sessionView struct {
	mu     sync.RWMutex
	latest *dashboard.ChartView
}

func (v *sessionView) RenderChart(_ context.Context, view dashboard.ChartView) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.latest = &view
}

func (v *sessionView) Latest() (dashboard.ChartView, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()

	if v.latest == nil {
		return dashboard.ChartView{}, false
	}

	return *v.latest, true
}

type SessionOptions struct {
	TTL          time.Duration
	SecureCookie bool
}

// SessionStore хранит сессии в памяти. Сессия истекает, если за TTL не было
// запросов.
type SessionStore struct {
	mu       sync.Mutex
	cache    *cache.Cache
	pipeline chartBuilder
	options  SessionOptions
}

func NewSessionStore(pipeline chartBuilder, options SessionOptions) *SessionStore {
	return &SessionStore{
		cache:    cache.New(options.TTL, sessionCleanupFactor*options.TTL),
		pipeline: pipeline,
		options:  options,
	}
}

func (s *SessionStore) Len() int {
	return s.cache.ItemCount()
}

// Middleware достает id сессии из cookie (или выдает новый, если cookie нет
// или id невалиден) и кладет его в контекст. Cookie отправляется на каждый
// запрос, чтобы MaxAge продлевался вместе с сессией в хранилище.
func (s *SessionStore) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		id, ok := sessionIDFromRequest(r)
		if !ok {
			id = xid.New().String()
		}

		http.SetCookie(w, &http.Cookie{ //nolint:exhaustruct
			Name:     SessionCookie,
			Value:    id,
			Path:     "/",
			MaxAge:   int(s.options.TTL.Seconds()),
			HttpOnly: true,
			Secure:   s.options.SecureCookie,
			SameSite: http.SameSiteLaxMode,
		})

		ctx = contextx.WithSessionID(ctx, contextx.SessionID(id))
		ctx = contextx.WithLogger(ctx, logger(ctx).With(slog.String(logx.FieldSessionID, id)))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// FromContext возвращает сессию запроса, создавая ее, если она истекла или
// еще не сохранялась. Каждый вызов продлевает срок жизни.
func (s *SessionStore) FromContext(ctx context.Context) (*Session, error) {
	id, err := contextx.SessionIDFromContext(ctx)
	if err != nil {
		return nil, fmt.Errorf("contextx.SessionIDFromContext: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item, ok := s.cache.Get(id.String()); ok {
		if session, ok := item.(*Session); ok {
			s.cache.SetDefault(id.String(), session)

			return session, nil
		}
	}

	view := &sessionView{}
	session := &Session{
		ID:         id.String(),
		controller: dashboard.NewController(s.pipeline, view),
		view:       view,
	}

	s.cache.SetDefault(id.String(), session)

	logger(ctx).Info("session started")

	return session, nil
}

func sessionIDFromRequest(r *http.Request) (string, bool) {
	cookie, err := r.Cookie(SessionCookie)
	if err != nil {
		return "", false
	}

	if _, err := xid.FromString(cookie.Value); err != nil {
		return "", false
	}

	return cookie.Value, true
}
