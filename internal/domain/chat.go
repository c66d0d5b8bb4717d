package domain

import (
	"sort"
	"time"
)

type ChatRoom struct {
	ID           string    `json:"id" firestore:"id"`
	RequestID    string    `json:"request_id" firestore:"request_id"`
	RequesterUID string    `json:"requester_uid" firestore:"requester_uid"`
	DonorUID     string    `json:"donor_uid" firestore:"donor_uid"`
	Participants []string  `json:"participants" firestore:"participants"`
	CreatedAt    time.Time `json:"created_at" firestore:"created_at"`
}

// ChatSession is returned to whoever initiated the chat.
type ChatSession struct {
	ChatID       string `json:"chat_id"`
	RequesterUID string `json:"requester_uid"`
}

// ChatParticipants returns the requester/donor pair in lexicographic order.
func ChatParticipants(requesterUID, donorUID string) []string {
	participants := []string{requesterUID, donorUID}
	sort.Strings(participants)
	return participants
}

// ChatRoomID derives the room id so that either party resolves to the same room.
func ChatRoomID(campaignID, requesterUID, donorUID string) string {
	p := ChatParticipants(requesterUID, donorUID)
	return campaignID + "_" + p[0] + "_" + p[1]
}
