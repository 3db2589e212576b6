// Package backend is the typed HTTP/JSON client for the reservation backend API.
package backend

// ReservationRequest is the body of POST /reservations.
type ReservationRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
}

// Reservation is a reservation record as returned by the backend.
type Reservation struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Service string `json:"service"`
	Date    string `json:"date"`
	Time    string `json:"time"`
	Status  string `json:"status"`
}

// Reservation statuses.
const (
	StatusActive    = "active"
	StatusCancelled = "cancelled"
)

// AvailableTimes is the response of GET /reservations/available-times.
type AvailableTimes struct {
	Date           string   `json:"date"`
	AllTimeSlots   []string `json:"all_time_slots"`
	AvailableTimes []string `json:"available_times"`
	ReservedTimes  []string `json:"reserved_times"`
}

// ChatTurn is one prior transcript entry sent as context to the chatbot.
type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ChatRequest is the body of POST /chatbot.
type ChatRequest struct {
	Message             string     `json:"message"`
	ConversationHistory []ChatTurn `json:"conversation_history"`
}

// ChatResponse is the chatbot reply.
type ChatResponse struct {
	Response string `json:"response"`
}

// LoginRequest is the body of POST /admin/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginResponse carries the admin bearer token.
type LoginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type,omitempty"`
}

// WorkingHours is a blackout or override window.
type WorkingHours struct {
	ID          int    `json:"id"`
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// WorkingHoursRequest is the body of POST /admin/working-hours.
type WorkingHoursRequest struct {
	Date        string `json:"date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	IsAvailable bool   `json:"is_available"`
}

// MessageResponse is the generic {message} acknowledgement.
type MessageResponse struct {
	Message string `json:"message"`
}

// Partition selects one of the admin reservation lists.
type Partition string

const (
	PartitionActive    Partition = "active"
	PartitionPast      Partition = "past"
	PartitionCancelled Partition = "cancelled"
)

// Valid reports whether p names a known partition.
func (p Partition) Valid() bool {
	switch p {
	case PartitionActive, PartitionPast, PartitionCancelled:
		return true
	}
	return false
}
