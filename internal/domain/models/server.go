package models

import "time"

// Server is an external integration registered by a user.
// Name is unique per owner.
type Server struct {
	ID        string     `json:"id"`
	UserID    string     `json:"userId"`
	Name      string     `json:"name"`
	URL       string     `json:"url"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt *time.Time `json:"updatedAt"`
}

// PublicServer is the representation returned to clients.
type PublicServer struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// ToPublic projects a server for API responses.
func (s *Server) ToPublic() PublicServer {
	return PublicServer{ID: s.ID, Name: s.Name, URL: s.URL}
}
