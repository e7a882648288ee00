package domain

import "strconv"

// HubID identifies a tenant partition. Every list, subscriber and profile row
// belongs to exactly one hub.
type HubID int

// MaxHubID is the highest hub in the fixed hub enumeration. Hubs are numbered
// from 1.
const MaxHubID HubID = 4

func (h HubID) Valid() bool {
	return h >= 1 && h <= MaxHubID
}

func (h HubID) String() string {
	return strconv.Itoa(int(h))
}

// Hubs returns every valid hub in ascending order.
func Hubs() []HubID {
	hubs := make([]HubID, 0, int(MaxHubID))
	for h := HubID(1); h <= MaxHubID; h++ {
		hubs = append(hubs, h)
	}
	return hubs
}
