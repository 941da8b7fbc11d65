package fixture

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/simplecom/storefront-smoke/internal/apiclient"
)

// PerPage is the users API page size.
const PerPage = 6

var users = []apiclient.User{
	user(1, "George", "Bluth"),
	user(2, "Janet", "Weaver"),
	user(3, "Emma", "Wong"),
	user(4, "Eve", "Holt"),
	user(5, "Charles", "Morris"),
	user(6, "Tracey", "Ramos"),
	user(7, "Michael", "Lawson"),
	user(8, "Lindsay", "Ferguson"),
	user(9, "Tobias", "Funke"),
	user(10, "Byron", "Fields"),
	user(11, "George", "Edwards"),
	user(12, "Rachel", "Howell"),
}

func user(id int, first, last string) apiclient.User {
	return apiclient.User{
		ID:        id,
		Email:     strings.ToLower(first + "." + last + "@reqres.in"),
		FirstName: first,
		LastName:  last,
		Avatar:    fmt.Sprintf("https://reqres.in/img/faces/%d-image.jpg", id),
	}
}

// ListUsers returns the requested page; pages past the end have no data.
func ListUsers(page int) apiclient.UserList {
	if page < 1 {
		page = 1
	}
	totalPages := (len(users) + PerPage - 1) / PerPage
	result := apiclient.UserList{Page: page, PerPage: PerPage, Total: len(users), TotalPages: totalPages, Data: []apiclient.User{}}

	start := (page - 1) * PerPage
	if start < len(users) {
		end := start + PerPage
		if end > len(users) {
			end = len(users)
		}
		result.Data = users[start:end]
	}
	return result
}

// UsersHandler handles GET /api/users?page=N.
type UsersHandler struct{}

func (UsersHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil {
		page = 1
	}
	writeJSON(w, http.StatusOK, ListUsers(page))
}

// UnknownHandler handles GET /api/unknown/{id}. No resource exists, so
// every well-formed request is a 404 with an empty object.
type UnknownHandler struct{}

func (UnknownHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	id := strings.TrimPrefix(r.URL.Path, "/api/unknown/")
	if _, err := strconv.Atoi(id); err != nil {
		http.Error(w, "Bad request", http.StatusBadRequest)
		return
	}
	writeJSON(w, http.StatusNotFound, struct{}{})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Printf("Error encoding response: %v", err)
	}
}
