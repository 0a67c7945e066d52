package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"restofinder/cache"
	"restofinder/db"
	"restofinder/events"
	"restofinder/models"
	"restofinder/service"

	"github.com/gin-contrib/sessions"
	gormsessions "github.com/gin-contrib/sessions/gorm"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type testServer struct {
	router *gin.Engine
	db     *gorm.DB
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)
	if err := RegisterValidators(); err != nil {
		t.Fatalf("RegisterValidators: %v", err)
	}
	tx, err := db.OpenMemory(t.Name())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if err = models.Migrate(tx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := tx.DB(); err == nil {
			sqlDB.Close()
		}
	})
	hub := events.NewHub()
	c := cache.NewMemory(time.Minute)
	h := &Handlers{
		Users:       service.NewUsers(tx),
		Restaurants: service.NewRestaurants(tx, c),
		Lists:       service.NewLists(tx, c, hub),
		Hub:         hub,
	}
	router := gin.New()
	router.Use(sessions.Sessions("token", gormsessions.NewStore(tx, false, []byte("test key"))))
	h.Routes(router)
	return &testServer{router: router, db: tx}
}

func (s *testServer) do(t *testing.T, method, target, body string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	result := map[string]any{}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return result
}

func (s *testServer) createUser(t *testing.T, username string) uint64 {
	t.Helper()
	body := `{"username":"` + username + `","firstName":"Ann","lastName":"Lee","city":"Halifax","province":"NS"}`
	w := s.do(t, http.MethodPost, "/user", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /user = %d %s", w.Code, w.Body.String())
	}
	var u models.User
	s.db.Where("username = ?", strings.ToLower(username)).First(&u)
	return u.ID
}

const validRestaurant = `{"name":"Bluenose","city":"Halifax","province":"NS","postalCode":"B3J 1S9",` +
	`"cuisineType":"Seafood","distance":12,"businessHours":[["09:00","17:00"],["09:00","17:00"],` +
	`["09:00","17:00"],["09:00","17:00"],["09:00","17:00"],["09:00","17:00"],["10:00","14:00"]]}`

func (s *testServer) createRestaurant(t *testing.T) uint64 {
	t.Helper()
	w := s.do(t, http.MethodPost, "/restaurant", validRestaurant)
	if w.Code != http.StatusOK {
		t.Fatalf("POST /restaurant = %d %s", w.Code, w.Body.String())
	}
	return uint64(decode(t, w)["id"].(float64))
}

func TestUserCreate(t *testing.T) {
	s := newTestServer(t)
	body := `{"username":"Ann@Example.com","firstName":"Ann","lastName":"Lee","city":"Halifax","province":"NS"}`

	w := s.do(t, http.MethodPost, "/user", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	if msg := decode(t, w)["message"]; msg != "User ann@example.com created" {
		t.Errorf("message = %v", msg)
	}

	w = s.do(t, http.MethodPost, "/user", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("duplicate status = %d, body = %s", w.Code, w.Body.String())
	}
	messages, ok := decode(t, w)["message"].([]any)
	if !ok || len(messages) == 0 {
		t.Errorf("duplicate message = %s, want the constraint messages", w.Body.String())
	}
}

func TestUserCreate_Validation(t *testing.T) {
	s := newTestServer(t)
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"bad email", `{"username":"nope","firstName":"A","lastName":"B","city":"C","province":"ON"}`, "username"},
		{"unknown province", `{"username":"a@b.ca","firstName":"A","lastName":"B","city":"C","province":"XX"}`, "province"},
		{"missing first name", `{"username":"a@b.ca","lastName":"B","city":"C","province":"ON"}`, "firstName"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/user", tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			errs := decode(t, w)["errors"].([]any)
			if len(errs) != 1 || errs[0].(map[string]any)["field"] != tt.field {
				t.Errorf("errors = %v, want one for %s", errs, tt.field)
			}
		})
	}
}

func TestUserGet(t *testing.T) {
	s := newTestServer(t)
	id := s.createUser(t, "get@example.com")

	tests := []struct {
		name   string
		target string
		status int
	}{
		{"found", "/user/" + strconv.FormatUint(id, 10), http.StatusOK},
		{"not found", "/user/" + strconv.FormatUint(id+10, 10), http.StatusNotFound},
		{"not a number", "/user/abc", http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.target, "")
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.status, w.Body.String())
			}
		})
	}
	w := s.do(t, http.MethodGet, "/user/"+strconv.FormatUint(id+10, 10), "")
	want := "User with id " + strconv.FormatUint(id+10, 10) + " not found."
	if msg := decode(t, w)["message"]; msg != want {
		t.Errorf("message = %v, want %v", msg, want)
	}

	w = s.do(t, http.MethodGet, "/user/list", "")
	if results := decode(t, w)["results"].([]any); len(results) != 1 {
		t.Errorf("GET /user/list results = %v", results)
	}
}

func TestRestaurantCreate(t *testing.T) {
	s := newTestServer(t)
	w := s.do(t, http.MethodPost, "/restaurant", validRestaurant)
	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	r := decode(t, w)
	if r["country"] != "Canada" || r["name"] != "Bluenose" {
		t.Errorf("restaurant = %v", r)
	}
	if hours := r["businessHours"].([]any); len(hours) != 7 {
		t.Errorf("got %d business hours", len(hours))
	}

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"six days", strings.Replace(validRestaurant, `,["10:00","14:00"]`, "", 1), "businessHours"},
		{"bad clock", strings.Replace(validRestaurant, `"10:00","14:00"`, `"10:00","2pm"`, 1), "businessHours[6][1]"},
		{"short postal code", strings.Replace(validRestaurant, `"B3J 1S9"`, `"B3J"`, 1), "postalCode"},
		{"no distance", strings.Replace(validRestaurant, `"distance":12,`, "", 1), "distance"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/restaurant", tt.body)
			if w.Code != http.StatusUnprocessableEntity {
				t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
			}
			errs := decode(t, w)["errors"].([]any)
			if len(errs) != 1 || errs[0].(map[string]any)["field"] != tt.field {
				t.Errorf("errors = %v, want one for %s", errs, tt.field)
			}
		})
	}
}

func TestRestaurantUpdate(t *testing.T) {
	s := newTestServer(t)
	id := s.createRestaurant(t)

	w := s.do(t, http.MethodPut, "/restaurant", `{"id":`+strconv.FormatUint(id, 10)+`,"name":"Bluenose II","distance":3}`)
	if w.Code != http.StatusOK || decode(t, w)["message"] != "Update successful" {
		t.Fatalf("PUT /restaurant = %d %s", w.Code, w.Body.String())
	}
	var stored models.Restaurant
	s.db.First(&stored, id)
	if stored.Name != "Bluenose II" || stored.Distance != 3 || stored.CuisineType != "Seafood" {
		t.Errorf("stored = %+v", stored)
	}

	missing := strconv.FormatUint(id+1, 10)
	w = s.do(t, http.MethodPut, "/restaurant", `{"id":"`+missing+`","name":"Ghost"}`)
	if w.Code != http.StatusNotFound {
		t.Fatalf("PUT /restaurant (missing) = %d %s", w.Code, w.Body.String())
	}
	if msg := decode(t, w)["message"]; msg != "Restaurant with "+missing+" not found." {
		t.Errorf("message = %v", msg)
	}
}

func TestRestaurantSearch(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser(t, "search@example.com")
	s.createRestaurant(t)
	uid := strconv.FormatUint(userID, 10)

	tests := []struct {
		name   string
		query  string
		status int
		count  int
	}{
		{"everything", "?userId=" + uid, http.StatusOK, 1},
		{"city", "?userId=" + uid + "&city=halif", http.StatusOK, 1},
		{"too far", "?userId=" + uid + "&distance=13", http.StatusOK, 0},
		{"decimal distance is truncated", "?userId=" + uid + "&distance=12.5", http.StatusOK, 1},
		{"decimal distance too far", "?userId=" + uid + "&distance=13.5", http.StatusOK, 0},
		{"bad province", "?userId=" + uid + "&province=ZZ", http.StatusUnprocessableEntity, 0},
		{"bad currentlyOpen", "?userId=" + uid + "&currentlyOpen=2", http.StatusUnprocessableEntity, 0},
		{"no user", "?city=halifax", http.StatusUnprocessableEntity, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/restaurants"+tt.query, "")
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d, body = %s", w.Code, tt.status, w.Body.String())
			}
			if tt.status != http.StatusOK {
				return
			}
			var results []models.Restaurant
			if err := json.Unmarshal(w.Body.Bytes(), &results); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(results) != tt.count {
				t.Errorf("got %d restaurants, want %d", len(results), tt.count)
			}
		})
	}
}

func TestFavourites(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser(t, "fav@example.com")
	restaurantID := s.createRestaurant(t)
	pair := `{"userId":` + strconv.FormatUint(userID, 10) + `,"restaurantId":` + strconv.FormatUint(restaurantID, 10) + `}`

	steps := []struct {
		name    string
		method  string
		path    string
		body    string
		status  int
		message string
	}{
		{"add", http.MethodPost, "/favourites", pair, http.StatusOK, "Added restaurant: Bluenose"},
		{"add again", http.MethodPost, "/favourites", pair, http.StatusOK, "Already favourited!"},
		{"remove", http.MethodDelete, "/unfavourite", pair, http.StatusOK, "Successfully unfavourited restaurant."},
		{"remove again", http.MethodDelete, "/unfavourite", pair, http.StatusBadRequest, "Restaurant was not in favourites."},
		{"blacklist", http.MethodPost, "/blacklist", pair, http.StatusOK, "Added restaurant to blacklist: Bluenose"},
		{"blacklist again", http.MethodPost, "/blacklist", pair, http.StatusOK, "Already blacklisted!"},
		{"add blacklisted", http.MethodPost, "/favourites", pair, http.StatusBadRequest, "Cannot favourite a blacklisted restaurant!"},
		{"unblacklist", http.MethodDelete, "/unblacklist", pair, http.StatusOK, "Successfully unblacklisted restaurant."},
		{"unblacklist again", http.MethodDelete, "/unblacklist", pair, http.StatusBadRequest, "Restaurant was not in blacklist."},
		{"add after unblacklist", http.MethodPost, "/favourites", pair, http.StatusOK, "Added restaurant: Bluenose"},
	}
	for _, step := range steps {
		w := s.do(t, step.method, step.path, step.body)
		if w.Code != step.status {
			t.Fatalf("%s: status = %d, want %d, body = %s", step.name, w.Code, step.status, w.Body.String())
		}
		if msg := decode(t, w)["message"]; msg != step.message {
			t.Fatalf("%s: message = %v, want %v", step.name, msg, step.message)
		}
	}

	w := s.do(t, http.MethodGet, "/favourites?userId="+strconv.FormatUint(userID, 10), "")
	if w.Code != http.StatusOK {
		t.Fatalf("GET /favourites = %d %s", w.Code, w.Body.String())
	}
	results := decode(t, w)["results"].([]any)
	if len(results) != 1 {
		t.Fatalf("results = %v", results)
	}
	fav := results[0].(map[string]any)
	if fav["username"] != "fav@example.com" || fav["restaurant"].(map[string]any)["name"] != "Bluenose" {
		t.Errorf("favourite = %v", fav)
	}

	w = s.do(t, http.MethodGet, "/blacklist?userId="+strconv.FormatUint(userID, 10), "")
	if results := decode(t, w)["results"].([]any); w.Code != http.StatusOK || len(results) != 0 {
		t.Errorf("GET /blacklist = %d %v", w.Code, results)
	}
}

func TestFavouriteAdd_MissingEntities(t *testing.T) {
	s := newTestServer(t)
	userID := s.createUser(t, "missing@example.com")
	body := `{"userId":"` + strconv.FormatUint(userID, 10) + `","restaurantId":"404"}`

	w := s.do(t, http.MethodPost, "/favourites", body)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, body = %s", w.Code, w.Body.String())
	}
	message := decode(t, w)["message"].(map[string]any)
	if message["userExists"] != float64(1) || message["restaurantExists"] != float64(0) {
		t.Errorf("message = %v", message)
	}

	w = s.do(t, http.MethodPost, "/blacklist", `{"userId":"999","restaurantId":"404"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("blacklist status = %d, body = %s", w.Code, w.Body.String())
	}
	message = decode(t, w)["message"].(map[string]any)
	if message["userExists"] != float64(0) || message["restaurantExists"] != float64(0) {
		t.Errorf("blacklist message = %v", message)
	}

	w = s.do(t, http.MethodPost, "/favourites", `{"userId":"`+strconv.FormatUint(userID, 10)+`"}`)
	if w.Code != http.StatusUnprocessableEntity {
		t.Errorf("missing restaurantId status = %d, body = %s", w.Code, w.Body.String())
	}
}

func TestSessionRemembersUser(t *testing.T) {
	s := newTestServer(t)
	restaurantID := s.createRestaurant(t)

	w := s.do(t, http.MethodGet, "/favourites", "")
	if w.Code != http.StatusUnprocessableEntity {
		t.Fatalf("without user or session = %d %s", w.Code, w.Body.String())
	}

	body := `{"username":"session@example.com","firstName":"S","lastName":"T","city":"Regina","province":"SK"}`
	w = s.do(t, http.MethodPost, "/user", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /user = %d %s", w.Code, w.Body.String())
	}
	cookies := w.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatalf("no session cookie set")
	}

	w = s.do(t, http.MethodPost, "/favourites", `{"restaurantId":`+strconv.FormatUint(restaurantID, 10)+`}`, cookies...)
	if w.Code != http.StatusOK || decode(t, w)["message"] != "Added restaurant: Bluenose" {
		t.Fatalf("POST /favourites with session = %d %s", w.Code, w.Body.String())
	}
	w = s.do(t, http.MethodGet, "/favourites", "", cookies...)
	if results := decode(t, w)["results"].([]any); w.Code != http.StatusOK || len(results) != 1 {
		t.Errorf("GET /favourites with session = %d %s", w.Code, w.Body.String())
	}
}
