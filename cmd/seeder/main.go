// Command seeder populates a running API instance with a demo clinical fleet:
// an admin account, a handful of machines with warranties and open balances,
// service history, contracts, spare parts and payment reminders. Point it at
// a fresh database to get a dashboard worth looking at.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

var authToken string

func request(method, url string, payload interface{}) (map[string]interface{}, int, error) {
	var body *bytes.Buffer
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(data)
	} else {
		body = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	if authToken != "" {
		req.Header.Set("Authorization", "Bearer "+authToken)
	}

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		result = nil
	}
	return result, resp.StatusCode, nil
}

func login(apiURL, username, password string) error {
	result, status, err := request(http.MethodPost, apiURL+"/auth/login", map[string]string{
		"username": username,
		"password": password,
	})
	if err != nil {
		return err
	}
	if status == http.StatusOK {
		authToken, _ = result["token"].(string)
		return nil
	}

	// First run: the account does not exist yet.
	result, status, err = request(http.MethodPost, apiURL+"/auth/register", map[string]string{
		"username":   username,
		"email":      username + "@hospital.local",
		"password":   password,
		"first_name": "Fleet",
		"last_name":  "Admin",
		"role":       "admin",
	})
	if err != nil {
		return err
	}
	if status != http.StatusCreated {
		return fmt.Errorf("registration failed with status %d", status)
	}
	authToken, _ = result["token"].(string)
	return nil
}

func create(apiURL, path string, payload interface{}) (string, error) {
	result, status, err := request(http.MethodPost, apiURL+path, payload)
	if err != nil {
		return "", err
	}
	if status != http.StatusCreated {
		return "", fmt.Errorf("POST %s failed with status %d", path, status)
	}
	id, _ := result["id"].(string)
	if warning, ok := result["warning"].(string); ok {
		log.WithField("path", path).Warn(warning)
	}
	return id, nil
}

type machine struct {
	name     string
	brand    string
	model    string
	location string
	price    float64
	paid     float64
	warranty int // days, 0 = none
	license  bool
}

var machines = []machine{
	{"Ventilator A3", "Dräger", "Evita V300", "ICU", 48000, 20000, 730, false},
	{"CT Scanner", "Siemens", "Somatom go.Up", "Radiology", 420000, 420000, 365, true},
	{"Infusion Pump", "B. Braun", "Perfusor Space", "Ward 4", 2400, 2400, 365, false},
	{"Autoclave", "Tuttnauer", "3870 EA", "CSSD", 11500, 6000, 0, false},
	{"Patient Monitor", "Philips", "IntelliVue MX450", "ICU", 8900, 8900, 730, false},
	{"Ultrasound", "GE", "Voluson S8", "Obstetrics", 65000, 30000, 365, true},
}

func seedEquipment(apiURL string) []string {
	ids := make([]string, 0, len(machines))
	for _, m := range machines {
		purchase := time.Now().AddDate(0, -rand.Intn(18), 0)
		payload := map[string]interface{}{
			"name":           m.name,
			"brand":          m.brand,
			"model":          m.model,
			"location":       m.location,
			"quantity":       1,
			"purchase_price": m.price,
			"paid_amount":    m.paid,
			"purchase_date":  purchase,
			"status":         "Operational",
		}
		if m.warranty > 0 {
			payload["has_warranty"] = true
			payload["warranty_duration_days"] = m.warranty
		}
		if m.license {
			payload["license_required"] = true
			payload["license_info"] = map[string]interface{}{
				"name":              "Operating License",
				"number":            fmt.Sprintf("LIC-%04d", rand.Intn(10000)),
				"expiry_date":       time.Now().AddDate(0, 0, 20+rand.Intn(300)),
				"renewal_lead_days": 30,
			}
		}
		id, err := create(apiURL, "/equipment", payload)
		if err != nil {
			log.WithError(err).WithField("name", m.name).Error("equipment not created")
			continue
		}
		log.WithFields(log.Fields{"id": id, "name": m.name}).Info("created equipment")
		ids = append(ids, id)
	}
	return ids
}

func seedDirectory(apiURL string) {
	vendors := []map[string]interface{}{
		{
			"company_name": "MedServe Ltd",
			"email":        "service@medserve.example",
			"address":      "12 Industrial Rd, Accra",
			"rating":       4,
			"machines": []map[string]string{
				{"name": "Ventilator", "brand": "Dräger"},
				{"name": "Patient Monitor", "brand": "Philips"},
			},
		},
		{
			"company_name": "BioCal Services",
			"email":        "lab@biocal.example",
			"address":      "4 Harbour St, Tema",
			"rating":       5,
			"machines": []map[string]string{
				{"name": "Autoclave", "brand": "Tuttnauer"},
			},
		},
	}
	for _, v := range vendors {
		if _, err := create(apiURL, "/vendors", v); err != nil {
			log.WithError(err).Error("vendor not created")
		}
	}

	engineers := []map[string]interface{}{
		{"name": "K. Boateng", "specialties": "Imaging", "phone": "+233-26-555-0101", "company_name": "MedServe Ltd"},
		{"name": "E. Owusu", "specialties": "Life support", "phone": "+233-27-555-0192", "company_name": "BioCal Services"},
	}
	for _, e := range engineers {
		if _, err := create(apiURL, "/engineers", e); err != nil {
			log.WithError(err).Error("engineer not created")
		}
	}
}

func seedHistory(apiURL string, equipmentIDs []string) {
	if len(equipmentIDs) == 0 {
		return
	}

	types := []string{"Preventive", "Corrective", "Calibration"}
	for i, id := range equipmentIDs {
		cost := 400 + rand.Float64()*2200
		paid := cost
		if i%2 == 0 {
			paid = cost / 2 // leave some service debt for the ledger
		}
		payload := map[string]interface{}{
			"equipment_id": id,
			"date":         time.Now().AddDate(0, 0, -rand.Intn(120)),
			"type":         types[i%len(types)],
			"description":  "Scheduled maintenance visit",
			"cost":         cost,
			"paid_amount":  paid,
			"company_name": "MedServe Ltd",
		}
		if _, err := create(apiURL, "/service-logs", payload); err != nil {
			log.WithError(err).Error("service log not created")
		}
	}

	// One contract on the first machine; expect an overlap warning when the
	// machine is still under warranty.
	contract := map[string]interface{}{
		"equipment_id": equipmentIDs[0],
		"company_name": "MedServe Ltd",
		"start_date":   time.Now(),
		"end_date":     time.Now().AddDate(1, 0, 0),
		"amount":       6000,
		"type":         "AMC",
	}
	if _, err := create(apiURL, "/contracts", contract); err != nil {
		log.WithError(err).Error("contract not created")
	}

	reminder := map[string]interface{}{
		"source_id":      equipmentIDs[0],
		"source_type":    "equipment",
		"name":           "Ventilator installment",
		"provider":       "Dräger",
		"amount_to_pay":  14000,
		"scheduled_date": time.Now().AddDate(0, 0, 10),
		"lead_days":      14,
	}
	if _, err := create(apiURL, "/reminders", reminder); err != nil {
		log.WithError(err).Error("reminder not created")
	}
}

func seedParts(apiURL string) {
	parts := []map[string]interface{}{
		{"name": "O2 cell", "quantity": 2, "min_quantity": 4, "price": 180, "supplier": "MedServe Ltd"},
		{"name": "HEPA filter", "quantity": 25, "min_quantity": 10, "price": 32, "supplier": "BioCal Services"},
		{"name": "ECG lead set", "quantity": 8, "min_quantity": 5, "price": 54, "supplier": "MedServe Ltd"},
	}
	for _, p := range parts {
		if _, err := create(apiURL, "/spare-parts", p); err != nil {
			log.WithError(err).Error("spare part not created")
		}
	}
}

func main() {
	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}
	username := os.Getenv("SEED_USERNAME")
	if username == "" {
		username = "admin"
	}
	password := os.Getenv("SEED_PASSWORD")
	if password == "" {
		password = "changeme123"
	}

	log.WithField("api_url", apiURL).Info("seeding demo fleet")

	if err := login(apiURL, username, password); err != nil {
		log.WithError(err).Fatal("authentication failed; is the API up?")
	}

	ids := seedEquipment(apiURL)
	seedDirectory(apiURL)
	seedHistory(apiURL, ids)
	seedParts(apiURL)

	log.WithField("equipment", len(ids)).Info("seeding complete")
}
