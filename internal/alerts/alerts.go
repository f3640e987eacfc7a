package alerts

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/jamesonvoice/biomedicaldashboard/internal/models"
	"github.com/jamesonvoice/biomedicaldashboard/internal/reminders"
)

// Topic constants. Hospital dashboards and ward displays subscribe to these.
const (
	TopicAssetDown      = "biomed/alerts/asset-down"
	TopicPaymentOverdue = "biomed/alerts/payment-overdue"
	TopicLicenseRenewal = "biomed/alerts/license-renewal"
	TopicLowStock       = "biomed/alerts/low-stock"
)

const publishTimeout = 3 * time.Second

// Event is the wire format for every alert message.
type Event struct {
	Type      string      `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// AssetDownPayload announces that a machine was marked non-operational.
type AssetDownPayload struct {
	EquipmentID string `json:"equipment_id"`
	Name        string `json:"name"`
	Location    string `json:"location"`
	Status      string `json:"status"`
}

// PaymentOverduePayload announces a reminder past its scheduled date.
type PaymentOverduePayload struct {
	ReminderID    string  `json:"reminder_id"`
	Name          string  `json:"name"`
	Amount        float64 `json:"amount"`
	ScheduledDate string  `json:"scheduled_date"`
	DaysUntil     int     `json:"days_until"`
}

// LicenseRenewalPayload announces a license inside its renewal window.
type LicenseRenewalPayload struct {
	EquipmentID string `json:"equipment_id"`
	Name        string `json:"name"`
	LicenseNo   string `json:"license_number"`
	ExpiryDate  string `json:"expiry_date"`
}

// LowStockPayload announces a spare part at or below its minimum quantity.
type LowStockPayload struct {
	PartID      string `json:"part_id"`
	Name        string `json:"name"`
	Quantity    int    `json:"quantity"`
	MinQuantity int    `json:"min_quantity"`
}

// Publisher pushes alert events to an MQTT broker. A Publisher built
// without a broker URL is disabled and every publish is a silent no-op,
// so callers never need to guard their calls.
type Publisher struct {
	client mqtt.Client
	log    *logrus.Entry
}

// NewPublisher creates an alert publisher. An empty brokerURL yields a
// disabled publisher.
func NewPublisher(brokerURL, clientID string) *Publisher {
	p := &Publisher{
		log: logrus.WithField("component", "alerts"),
	}
	if brokerURL == "" {
		return p
	}

	opts := mqtt.NewClientOptions()
	opts.AddBroker(brokerURL)
	// Unique client ID so multiple service instances do not evict each other.
	opts.SetClientID(fmt.Sprintf("%s-%s", clientID, uuid.NewString()[:8]))
	opts.SetAutoReconnect(true)
	opts.SetMaxReconnectInterval(30 * time.Second)
	opts.SetKeepAlive(60 * time.Second)
	opts.SetCleanSession(true)
	opts.SetConnectionLostHandler(func(_ mqtt.Client, err error) {
		p.log.WithError(err).Warn("broker connection lost")
	})
	opts.SetOnConnectHandler(func(_ mqtt.Client) {
		p.log.WithField("broker", brokerURL).Info("connected to broker")
	})

	p.client = mqtt.NewClient(opts)
	return p
}

// Enabled reports whether a broker is configured.
func (p *Publisher) Enabled() bool {
	return p.client != nil
}

// Connect dials the broker. Disabled publishers return nil immediately.
func (p *Publisher) Connect() error {
	if p.client == nil {
		return nil
	}
	token := p.client.Connect()
	if !token.WaitTimeout(5 * time.Second) {
		return fmt.Errorf("broker connect timed out")
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("broker connect failed: %w", err)
	}
	return nil
}

// Close disconnects from the broker.
func (p *Publisher) Close() {
	if p.client != nil && p.client.IsConnected() {
		p.client.Disconnect(250)
	}
}

// AssetDown publishes a non-operational status transition.
func (p *Publisher) AssetDown(eq models.Equipment) {
	p.publish(TopicAssetDown, Event{
		Type:      "asset_down",
		Timestamp: time.Now().UnixMilli(),
		Payload: AssetDownPayload{
			EquipmentID: eq.ID.Hex(),
			Name:        eq.Name,
			Location:    eq.Location,
			Status:      string(eq.Status),
		},
	})
}

// PaymentOverdue publishes an overdue payment reminder.
func (p *Publisher) PaymentOverdue(alert reminders.Alert) {
	p.publish(TopicPaymentOverdue, Event{
		Type:      "payment_overdue",
		Timestamp: time.Now().UnixMilli(),
		Payload: PaymentOverduePayload{
			ReminderID:    alert.Reminder.ID.Hex(),
			Name:          alert.Reminder.Name,
			Amount:        alert.Reminder.AmountToPay,
			ScheduledDate: alert.Reminder.ScheduledDate.Format("2006-01-02"),
			DaysUntil:     alert.Urgency.DaysUntil,
		},
	})
}

// LicenseRenewal publishes a license that entered its renewal window.
func (p *Publisher) LicenseRenewal(eq models.Equipment) {
	if eq.LicenseInfo == nil || eq.LicenseInfo.ExpiryDate == nil {
		return
	}
	p.publish(TopicLicenseRenewal, Event{
		Type:      "license_renewal",
		Timestamp: time.Now().UnixMilli(),
		Payload: LicenseRenewalPayload{
			EquipmentID: eq.ID.Hex(),
			Name:        eq.Name,
			LicenseNo:   eq.LicenseInfo.Number,
			ExpiryDate:  eq.LicenseInfo.ExpiryDate.Format("2006-01-02"),
		},
	})
}

// LowStock publishes a spare part below its reorder threshold.
func (p *Publisher) LowStock(part models.SparePart) {
	p.publish(TopicLowStock, Event{
		Type:      "low_stock",
		Timestamp: time.Now().UnixMilli(),
		Payload: LowStockPayload{
			PartID:      part.ID.Hex(),
			Name:        part.Name,
			Quantity:    part.Quantity,
			MinQuantity: part.MinQuantity,
		},
	})
}

func (p *Publisher) publish(topic string, event Event) {
	if p.client == nil {
		return
	}
	data, err := json.Marshal(event)
	if err != nil {
		p.log.WithError(err).WithField("topic", topic).Error("marshal alert")
		return
	}

	// QoS 1: alerts must reach the dashboard at least once.
	token := p.client.Publish(topic, 1, false, data)
	if !token.WaitTimeout(publishTimeout) {
		p.log.WithField("topic", topic).Warn("publish timed out")
		return
	}
	if err := token.Error(); err != nil {
		p.log.WithError(err).WithField("topic", topic).Warn("publish failed")
		return
	}
	p.log.WithFields(logrus.Fields{"topic": topic, "type": event.Type}).Debug("alert published")
}
