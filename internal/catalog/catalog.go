// Package catalog holds the shop's static reference data: services, bundled
// packages, staff and the daily appointment slot template.
package catalog

import "strings"

// Service is a bookable catalog entry.
type Service struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Price       int    `json:"price"`
	Duration    int    `json:"duration"`
	Icon        string `json:"icon"`
}

// ServicePackage bundles several services by id.
type ServicePackage struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	ServiceIDs  []string `json:"services"`
	Popular     bool     `json:"popular,omitempty"`
}

// Staff is a barber shown on the about page.
type Staff struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	Role       string `json:"role"`
	Experience string `json:"experience"`
	Image      string `json:"image"`
	Bio        string `json:"bio"`
}

// Totals summarises the price and duration of a package.
type Totals struct {
	Price    int
	Duration int
}

var services = []Service{
	{ID: "1", Name: "Classic Haircut", Description: "Traditional scissor cut with styling", Price: 22, Duration: 45, Icon: "scissors"},
	{ID: "2", Name: "Beard Trim", Description: "Professional beard shaping and grooming", Price: 15, Duration: 30, Icon: "user"},
	{ID: "3", Name: "Hair & Beard Combo", Description: "Complete grooming package", Price: 32, Duration: 75, Icon: "star"},
	{ID: "4", Name: "Hot Towel Shave", Description: "Luxury wet shave experience", Price: 25, Duration: 60, Icon: "flame"},
	{ID: "5", Name: "Hair Wash & Style", Description: "Deep cleanse with premium styling", Price: 18, Duration: 40, Icon: "droplets"},
	{ID: "6", Name: "Mustache Grooming", Description: "Precision mustache trimming", Price: 12, Duration: 25, Icon: "smile"},
}

var packages = []ServicePackage{
	{ID: "classic", Name: "The Classic", Description: "Perfect for regular maintenance", ServiceIDs: []string{"1", "5"}},
	{ID: "gentleman", Name: "The Gentleman", Description: "The complete experience", ServiceIDs: []string{"1", "2", "5", "4"}, Popular: true},
	{ID: "royal", Name: "The Royal", Description: "The ultimate luxury", ServiceIDs: []string{"1", "4", "2", "5", "6"}},
}

var staff = []Staff{
	{
		ID:         "1",
		Name:       "Marcus Johnson",
		Role:       "Master Barber",
		Experience: "15 years",
		Image:      "https://images.pexels.com/photos/1681010/pexels-photo-1681010.jpeg?auto=compress&cs=tinysrgb&w=400",
		Bio:        "Marcus brings over 15 years of experience in classic and modern barbering techniques.",
	},
	{
		ID:         "2",
		Name:       "David Rodriguez",
		Role:       "Senior Barber",
		Experience: "8 years",
		Image:      "https://images.pexels.com/photos/1222271/pexels-photo-1222271.jpeg?auto=compress&cs=tinysrgb&w=400",
		Bio:        "Specializing in modern cuts and beard artistry with a keen eye for detail.",
	},
	{
		ID:         "3",
		Name:       "James Thompson",
		Role:       "Barber",
		Experience: "5 years",
		Image:      "https://images.pexels.com/photos/1040880/pexels-photo-1040880.jpeg?auto=compress&cs=tinysrgb&w=400",
		Bio:        "Passionate about traditional barbering with expertise in hot towel shaves.",
	},
}

// 30-minute positions from 9:00 AM; the last one ends at 6:30 PM.
var timeSlots = []string{
	"9:00 AM", "9:30 AM", "10:00 AM", "10:30 AM", "11:00 AM", "11:30 AM",
	"12:00 PM", "12:30 PM", "1:00 PM", "1:30 PM", "2:00 PM", "2:30 PM",
	"3:00 PM", "3:30 PM", "4:00 PM", "4:30 PM", "5:00 PM", "5:30 PM", "6:00 PM",
}

// Services returns every bookable service in display order.
func Services() []Service {
	return append([]Service(nil), services...)
}

// ServiceByID looks up a service.
func ServiceByID(id string) (Service, bool) {
	for _, s := range services {
		if s.ID == id {
			return s, true
		}
	}
	return Service{}, false
}

// ServiceNames resolves ids to display names, comma-joined in the given order.
// Unknown ids are skipped.
func ServiceNames(ids []string) string {
	names := make([]string, 0, len(ids))
	for _, id := range ids {
		if s, ok := ServiceByID(id); ok {
			names = append(names, s.Name)
		}
	}
	return strings.Join(names, ", ")
}

// Packages returns the bundled packages.
func Packages() []ServicePackage {
	out := make([]ServicePackage, len(packages))
	for i, p := range packages {
		p.ServiceIDs = append([]string(nil), p.ServiceIDs...)
		out[i] = p
	}
	return out
}

// PackageByID looks up a package.
func PackageByID(id string) (ServicePackage, bool) {
	for _, p := range packages {
		if p.ID == id {
			p.ServiceIDs = append([]string(nil), p.ServiceIDs...)
			return p, true
		}
	}
	return ServicePackage{}, false
}

// PackageServices resolves the services referenced by a package.
func PackageServices(p ServicePackage) []Service {
	out := make([]Service, 0, len(p.ServiceIDs))
	for _, id := range p.ServiceIDs {
		if s, ok := ServiceByID(id); ok {
			out = append(out, s)
		}
	}
	return out
}

// PackageTotals sums price and duration over a package's services.
func PackageTotals(p ServicePackage) Totals {
	var t Totals
	for _, s := range PackageServices(p) {
		t.Price += s.Price
		t.Duration += s.Duration
	}
	return t
}

// StaffMembers returns the barbers in display order.
func StaffMembers() []Staff {
	return append([]Staff(nil), staff...)
}

// TimeSlots returns the fixed daily slot template.
func TimeSlots() []string {
	return append([]string(nil), timeSlots...)
}

// IsKnownSlot reports whether label is part of the daily template.
func IsKnownSlot(label string) bool {
	for _, s := range timeSlots {
		if s == label {
			return true
		}
	}
	return false
}
