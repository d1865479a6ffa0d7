package notify

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/rs/zerolog/log"

	"github.com/brightops/taskcycle/internal/model"
)

const publishTimeout = 5 * time.Second

// MQTT connection handler
var connectHandler mqtt.OnConnectHandler = func(client mqtt.Client) {
	log.Info().Msg("connected to MQTT broker")
}

// MQTT connection lost handler
var connectLostHandler mqtt.ConnectionLostHandler = func(client mqtt.Client, err error) {
	log.Error().Err(err).Msg("MQTT connection lost")
}

// MQTTSink publishes reminders to a broker; employee-facing clients subscribe
// to their own topic.
type MQTTSink struct {
	client mqtt.Client
}

func NewMQTTSink(brokerURL string) (*MQTTSink, error) {
	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	opts.SetClientID("taskcycle-notifier")
	opts.OnConnect = connectHandler
	opts.OnConnectionLost = connectLostHandler

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("failed to connect to MQTT broker: %v", token.Error())
	}

	log.Info().Str("broker", brokerURL).Msg("MQTT reminder sink initialized")
	return &MQTTSink{client: client}, nil
}

type reminderPayload struct {
	TaskID    int       `json:"task_id"`
	Name      string    `json:"name"`
	GroupName string    `json:"group_name"`
	PlannedAt time.Time `json:"planned_at"`
	Assignee  string    `json:"assignee"`
}

func (s *MQTTSink) SendTaskReminder(task model.TaskInstance, assignee model.User) error {
	payload, err := json.Marshal(reminderPayload{
		TaskID:    task.ID,
		Name:      task.Name,
		GroupName: task.GroupName,
		PlannedAt: task.PlannedAt,
		Assignee:  assignee.Email,
	})
	if err != nil {
		return err
	}

	topic := fmt.Sprintf("taskcycle/reminders/%d", assignee.ID)
	token := s.client.Publish(topic, 1, false, payload)
	if !token.WaitTimeout(publishTimeout) {
		return fmt.Errorf("publish to %s timed out", topic)
	}
	return token.Error()
}
