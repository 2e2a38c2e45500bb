// Package entity contains the core business objects of the project,
// each representing a unique, identifiable concept within the domain.
package entity

import "time"

// Client represents a studio client and her loyalty state.
type Client struct {
	ID              string     `json:"id"`                        // Caller-generated identifier, unique within the collection.
	Name            string     `json:"name"`                      // The client's display name.
	Instagram       string     `json:"instagram"`                 // Contact handle (Instagram profile or phone number).
	Notes           string     `json:"notes"`                     // Free-text notes (preferences, allergies, history).
	TotalVisits     int        `json:"totalVisits"`               // Lifetime visit counter driving the loyalty reward.
	LastVisit       time.Time  `json:"lastVisit"`                 // Timestamp of the most recent visit.
	NextAppointment *time.Time `json:"nextAppointment,omitempty"` // Optional upcoming appointment.
}

// RewardEligible reports whether the client has earned a free reward: the
// visit counter must be a positive multiple of the reward interval.
func (c *Client) RewardEligible(rewardEvery int) bool {
	if rewardEvery <= 0 {
		return false
	}

	return c.TotalVisits > 0 && c.TotalVisits%rewardEvery == 0
}

// LoyaltyProgress returns the number of visits counted toward the next
// reward. A client sitting exactly on a reward shows full progress.
func (c *Client) LoyaltyProgress(rewardEvery int) int {
	if rewardEvery <= 0 {
		return 0
	}
	if c.RewardEligible(rewardEvery) {
		return rewardEvery
	}

	return c.TotalVisits % rewardEvery
}
