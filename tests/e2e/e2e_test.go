package e2e

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourdesk/internal/api"
	"tourdesk/internal/database"
	"tourdesk/internal/domain"
	"tourdesk/internal/modules/admin"
	"tourdesk/internal/modules/auth"
	"tourdesk/internal/modules/guide"
	"tourdesk/internal/modules/tourist"
	"tourdesk/internal/pkg/images"
	"tourdesk/internal/pkg/notify"
	"tourdesk/internal/session"
)

// fakeBackend is an in-memory stand-in for the booking REST service, just
// enough surface for full client flows.
type fakeBackend struct {
	mu       sync.Mutex
	bookings []gin.H
	nextID   int64
	hits     map[string]int
}

func (b *fakeBackend) hit(name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits[name]++
}

func (b *fakeBackend) hitCount(name string) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.hits[name]
}

func (b *fakeBackend) resetHits() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.hits = map[string]int{}
}

type e2eSuite struct {
	backend  *fakeBackend
	store    *session.Store
	client   *api.Client
	auth     *auth.Service
	notifier *notify.Notifier
	log      *zap.Logger
}

var testUsers = map[string]gin.H{
	"admin":   {"user_id": 1, "name": "Admin", "username": "admin", "email": "admin@example.com", "role": "Admin"},
	"guider":  {"user_id": 2, "name": "Guide", "username": "guider", "email": "guide@example.com", "role": "Guide"},
	"tourist": {"user_id": 3, "name": "Tourist", "username": "tourist", "email": "tourist@example.com", "role": "Tourist"},
}

func setupSuite(t *testing.T) *e2eSuite {
	gin.SetMode(gin.TestMode)

	backend := &fakeBackend{
		nextID: 100,
		hits:   map[string]int{},
		bookings: []gin.H{
			{
				"booking_id": int64(50),
				"user":       testUsers["tourist"],
				"tour":       gin.H{"tour_id": 1, "title": "Spice Tour"},
				"date":       "2026-09-10",
				"status":     "Pending",
			},
		},
	}

	r := gin.New()
	apiGroup := r.Group("/api")

	apiGroup.POST("/user/login", func(c *gin.Context) {
		var creds struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&creds); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"message": "bad request"})
			return
		}
		u, ok := testUsers[creds.Username]
		if !ok || creds.Password != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"message": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusOK, u)
	})

	apiGroup.GET("/tour", func(c *gin.Context) {
		backend.hit("tour:list")
		c.JSON(http.StatusOK, []gin.H{
			// Owner and image fields deliberately use the different wire
			// shapes the backend has shipped.
			{"tour_id": 1, "title": "Spice Tour", "price": 50, "status": "Approved", "userId": 2, "imageUrl": `uploads\spice.jpg`},
			{"tour_id": 2, "name": "Stone Town Walk", "price": "35.5", "status": "Pending", "guide_id": 2},
			{"tour_id": 3, "title": "Island Adventure", "price": 80, "status": "Approved", "user": gin.H{"user_id": 9, "name": "Other"}},
		})
	})

	apiGroup.GET("/booking", func(c *gin.Context) {
		backend.hit("booking:list")
		backend.mu.Lock()
		defer backend.mu.Unlock()
		c.JSON(http.StatusOK, backend.bookings)
	})

	apiGroup.GET("/booking/user/:id", func(c *gin.Context) {
		backend.hit("booking:user")
		id := c.Param("id")
		backend.mu.Lock()
		defer backend.mu.Unlock()
		out := []gin.H{}
		for _, b := range backend.bookings {
			if u, ok := b["user"].(gin.H); ok && strconv.Itoa(u["user_id"].(int)) == id {
				out = append(out, b)
			}
		}
		c.JSON(http.StatusOK, out)
	})

	apiGroup.POST("/booking/create", func(c *gin.Context) {
		backend.hit("booking:create")
		userID, _ := strconv.Atoi(c.Query("userId"))
		tourID, _ := strconv.Atoi(c.Query("tourId"))
		if userID == 0 || tourID == 0 || c.Query("date") == "" {
			c.JSON(http.StatusBadRequest, gin.H{"message": "missing parameters"})
			return
		}
		backend.mu.Lock()
		defer backend.mu.Unlock()
		backend.nextID++
		backend.bookings = append(backend.bookings, gin.H{
			"booking_id": backend.nextID,
			"user":       testUsers["tourist"],
			"tour":       gin.H{"tour_id": tourID, "title": "Spice Tour"},
			"date":       c.Query("date"),
			"status":     "Pending",
		})
		c.JSON(http.StatusOK, gin.H{})
	})

	apiGroup.PUT("/booking/approve/:id", func(c *gin.Context) {
		backend.hit("booking:approve")
		id, _ := strconv.ParseInt(c.Param("id"), 10, 64)
		backend.mu.Lock()
		defer backend.mu.Unlock()
		for _, b := range backend.bookings {
			if bid, ok := b["booking_id"].(int64); ok && bid == id {
				b["status"] = "Approved"
			}
		}
		c.JSON(http.StatusOK, gin.H{})
	})

	apiGroup.GET("/review", func(c *gin.Context) {
		backend.hit("review:list")
		c.JSON(http.StatusOK, []gin.H{})
	})

	apiGroup.GET("/user", func(c *gin.Context) {
		backend.hit("user:list")
		c.JSON(http.StatusOK, []gin.H{testUsers["admin"], testUsers["guider"], testUsers["tourist"]})
	})

	server := httptest.NewServer(r)
	t.Cleanup(server.Close)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	store, err := session.NewStore(db)
	require.NoError(t, err)

	log := zap.NewNop()
	client := api.New(server.URL+"/api", 5*time.Second, log)

	return &e2eSuite{
		backend:  backend,
		store:    store,
		client:   client,
		auth:     auth.NewService(client, store, log),
		notifier: notify.New(),
		log:      log,
	}
}

func TestLoginPersistsPrincipal(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	p, err := s.auth.Login(ctx, auth.LoginForm{Username: "tourist", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleTourist, p.Role)

	stored, err := s.store.Load()
	require.NoError(t, err)
	assert.Equal(t, int64(3), stored.ID)
	assert.Equal(t, domain.RoleTourist, stored.Role)

	require.NoError(t, s.auth.Logout())
	_, err = s.store.Load()
	assert.ErrorIs(t, err, session.ErrNotAuthenticated)
}

func TestLoginRejectedCredentials(t *testing.T) {
	s := setupSuite(t)

	_, err := s.auth.Login(context.Background(),
		auth.LoginForm{Username: "tourist", Password: "wrong"})
	assert.ErrorIs(t, err, auth.ErrInvalidCredentials)
}

// A tourist principal must bounce off the guide and admin dashboards at
// construction time, before a single role-scoped fetch goes out.
func TestWrongRoleDashboardRedirectsWithoutFetching(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, auth.LoginForm{Username: "tourist", Password: "secret"})
	require.NoError(t, err)

	p, err := s.store.Load()
	require.NoError(t, err)
	s.backend.resetHits()

	_, err = guide.New(p, s.client, s.client, s.client, s.notifier, nil, s.log)
	assert.ErrorIs(t, err, session.ErrWrongRole)

	_, err = admin.New(p, s.client, s.client, s.client, s.client, nil, s.notifier, nil, s.log)
	assert.ErrorIs(t, err, session.ErrWrongRole)

	for _, route := range []string{"tour:list", "booking:list", "review:list", "user:list"} {
		assert.Zero(t, s.backend.hitCount(route), "route %s must not be fetched", route)
	}
}

func TestTouristBookingFlow(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, auth.LoginForm{Username: "tourist", Password: "secret"})
	require.NoError(t, err)
	p, err := s.store.Load()
	require.NoError(t, err)

	svc, err := tourist.New(p, s.client, s.client, s.client, s.notifier,
		func(string) bool { return true }, images.NewResolver("http://example.com/uploads"), s.log)
	require.NoError(t, err)

	svc.LoadAll(ctx)

	// The catalogue shows approved tours only, with the wire-level owner and
	// image fallbacks already resolved.
	tours := svc.AvailableTours()
	require.Len(t, tours, 2)
	assert.Equal(t, "Spice Tour", tours[0].Title)
	assert.Equal(t, "http://example.com/uploads/spice.jpg", svc.TourImageURL(&tours[0]))

	before := len(svc.MyBookings())
	require.NoError(t, svc.CreateBooking(ctx, tourist.BookingForm{
		TourID: tours[0].ID, Date: "2026-09-20",
	}))
	assert.Len(t, svc.MyBookings(), before+1, "create must resync the booking list")
}

func TestGuideSeesOnlyOwnedTours(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, auth.LoginForm{Username: "guider", Password: "secret"})
	require.NoError(t, err)
	p, err := s.store.Load()
	require.NoError(t, err)

	svc, err := guide.New(p, s.client, s.client, s.client, s.notifier,
		func(string) bool { return true }, s.log)
	require.NoError(t, err)

	svc.LoadAll(ctx)

	// Tours 1 (flat userId) and 2 (legacy guide_id) belong to the guide;
	// tour 3 is owned by someone else.
	mine := svc.MyTours()
	require.Len(t, mine, 2)
	assert.Equal(t, int64(1), mine[0].ID)
	assert.Equal(t, int64(2), mine[1].ID)
}

func TestAdminApprovesBookingWithSinglePatch(t *testing.T) {
	s := setupSuite(t)
	ctx := context.Background()

	_, err := s.auth.Login(ctx, auth.LoginForm{Username: "admin", Password: "secret"})
	require.NoError(t, err)
	p, err := s.store.Load()
	require.NoError(t, err)

	svc, err := admin.New(p, s.client, s.client, s.client, s.client, nil,
		s.notifier, func(string) bool { return true }, s.log)
	require.NoError(t, err)

	svc.LoadBookings(ctx)
	require.Equal(t, 1, svc.PendingBookings())

	require.NoError(t, svc.ApproveBooking(ctx, 50))

	bookings := svc.FilteredBookings()
	require.Len(t, bookings, 1)
	assert.Equal(t, domain.BookingApproved, bookings[0].Status)
	assert.Equal(t, 1, s.backend.hitCount("booking:list"), "approval patches locally, no reload")
	assert.Equal(t, 1, s.backend.hitCount("booking:approve"))
}
