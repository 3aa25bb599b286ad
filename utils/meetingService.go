package utils

import (
	"fmt"
	"log"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"educonnect/config"
)

var meetingClient = resty.New().SetTimeout(10 * time.Second)

// ProvisionMeetingRoom asks the video provider for a room and returns its
// join URL. Without a configured provider it falls back to a locally
// generated room slug so scheduling keeps working in development.
func ProvisionMeetingRoom(title string) (string, error) {
	if config.AppConfig.MeetingApiURL == "" {
		return fmt.Sprintf("https://meet.educonnect.io/%s", uuid.NewString()), nil
	}

	var result struct {
		RoomURL string `json:"room_url"`
	}

	resp, err := meetingClient.R().
		SetHeader("Authorization", "Bearer "+config.AppConfig.MeetingApiKey).
		SetBody(map[string]interface{}{
			"name":    title,
			"privacy": "private",
		}).
		SetResult(&result).
		Post(config.AppConfig.MeetingApiURL + "/rooms")
	if err != nil {
		log.Printf("Error provisioning meeting room: %v", err)
		return "", err
	}
	if resp.IsError() {
		log.Printf("Failed to provision meeting room, response code: %d", resp.StatusCode())
		return "", fmt.Errorf("failed to provision meeting room, code: %d", resp.StatusCode())
	}
	if result.RoomURL == "" {
		return "", fmt.Errorf("meeting provider returned no room URL")
	}
	return result.RoomURL, nil
}
