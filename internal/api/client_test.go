package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"tourdesk/internal/domain"
)

func newTestClient(t *testing.T, r *gin.Engine) *Client {
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return New(srv.URL, 5*time.Second, zap.NewNop())
}

func TestClient_Login(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/login", func(c *gin.Context) {
		var creds Credentials
		require.NoError(t, c.ShouldBindJSON(&creds))
		if creds.Username != "ahmed" || creds.Password != "secret" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid username or password"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user_id": 7, "name": "Ahmed", "username": "ahmed", "role": "Tourist"})
	})

	client := newTestClient(t, r)

	u, err := client.Login(context.Background(), Credentials{Username: "ahmed", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, int64(7), u.ID)
	assert.Equal(t, domain.RoleTourist, u.Role)

	_, err = client.Login(context.Background(), Credentials{Username: "ahmed", Password: "wrong"})
	var re *RemoteError
	require.ErrorAs(t, err, &re)
	assert.Equal(t, http.StatusUnauthorized, re.StatusCode)
	assert.Equal(t, "Invalid username or password", re.Message)
}

func TestClient_RegisterConflict(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/user/register", func(c *gin.Context) {
		c.JSON(http.StatusConflict, gin.H{"message": "username already exists"})
	})

	client := newTestClient(t, r)

	_, err := client.Register(context.Background(), RegisterRequest{Name: "A", Username: "a", Email: "a@a", Password: "x"})
	assert.True(t, IsConflict(err))
}

func TestClient_CreateBooking_QueryParams(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var gotUser, gotTour, gotDate string
	r.POST("/booking/create", func(c *gin.Context) {
		gotUser = c.Query("userId")
		gotTour = c.Query("tourId")
		gotDate = c.Query("date")
		c.Status(http.StatusCreated)
	})

	client := newTestClient(t, r)

	err := client.CreateBooking(context.Background(), CreateBookingRequest{UserID: 7, TourID: 3, Date: "2026-09-01"})
	require.NoError(t, err)
	assert.Equal(t, "7", gotUser)
	assert.Equal(t, "3", gotTour)
	assert.Equal(t, "2026-09-01", gotDate)
}

func TestClient_CreateTour_Multipart(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	r.POST("/tour/create", func(c *gin.Context) {
		assert.Equal(t, "Spice Tour", c.PostForm("title"))
		assert.Equal(t, "50", c.PostForm("price"))
		assert.Equal(t, "9", c.PostForm("userId"))

		file, err := c.FormFile("image")
		require.NoError(t, err)
		assert.Equal(t, "spice.jpg", file.Filename)

		c.JSON(http.StatusCreated, gin.H{"tour_id": 11, "title": "Spice Tour", "status": "Pending"})
	})

	client := newTestClient(t, r)

	tour, err := client.CreateTour(context.Background(), CreateTourRequest{
		Title:       "Spice Tour",
		Description: "Full day",
		Price:       50,
		Date:        "2026-09-01",
		UserID:      9,
		Image:       strings.NewReader("fake image bytes"),
		ImageName:   "spice.jpg",
	})
	require.NoError(t, err)
	assert.Equal(t, int64(11), tour.ID)
	assert.Equal(t, domain.TourPending, tour.Status)
}

func TestClient_SetTourStatus(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var gotStatus string
	r.PUT("/tour/7/status", func(c *gin.Context) {
		gotStatus = c.Query("status")
		c.Status(http.StatusOK)
	})

	client := newTestClient(t, r)

	require.NoError(t, client.SetTourStatus(context.Background(), 7, domain.TourApproved))
	assert.Equal(t, "Approved", gotStatus)
}

func TestClient_RequestIDHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	var got string
	r.GET("/tour", func(c *gin.Context) {
		got = c.GetHeader("X-Request-ID")
		c.JSON(http.StatusOK, []gin.H{})
	})

	client := newTestClient(t, r)

	_, err := client.ListTours(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, got)
}

func TestClient_ListTours_OwnerFallbackOverWire(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/tour", func(c *gin.Context) {
		c.String(http.StatusOK, `[{"tour_id":1,"title":"A","userId":5,"status":"Approved"},{"tour_id":2,"name":"B","user":{"user_id":6},"price":"80"}]`)
	})

	client := newTestClient(t, r)

	tours, err := client.ListTours(context.Background())
	require.NoError(t, err)
	require.Len(t, tours, 2)
	assert.Equal(t, int64(5), tours[0].OwnerID())
	assert.Equal(t, int64(6), tours[1].OwnerID())
	assert.Equal(t, "B", tours[1].Title)
	assert.Equal(t, 80.0, tours[1].Price)
}
