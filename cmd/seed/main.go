package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"auditdesk/config"
	"auditdesk/internal/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"gopkg.in/yaml.v3"
)

// yamlQuestion mirrors model.Question with yaml tags for seed files
type yamlQuestion struct {
	ID                string  `yaml:"id"`
	Text              string  `yaml:"text"`
	Type              string  `yaml:"type"`
	Options           string  `yaml:"options"`
	Weightage         float64 `yaml:"weightage"`
	Mandatory         bool    `yaml:"mandatory"`
	IsFatal           bool    `yaml:"isFatal"`
	EnableRemarks     bool    `yaml:"enableRemarks"`
	GrazingLogic      bool    `yaml:"grazingLogic"`
	GrazingPercentage float64 `yaml:"grazingPercentage"`
	ControlledBy      string  `yaml:"controlledBy"`
	ControlsSection   string  `yaml:"controlsSection"`
	VisibleOnValues   string  `yaml:"visibleOnValues"`
}

type yamlSection struct {
	Name         string         `yaml:"name"`
	IsRepeatable bool           `yaml:"isRepeatable"`
	ControlledBy string         `yaml:"controlledBy"`
	Questions    []yamlQuestion `yaml:"questions"`
}

type yamlForm struct {
	Name     string        `yaml:"name"`
	Sections []yamlSection `yaml:"sections"`
}

func main() {
	formFile := flag.String("form", "", "optional YAML form definition to seed instead of the demo form")
	flag.Parse()

	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)

	seedUsers(ctx, db)

	form := demoForm()
	if *formFile != "" {
		form, err = loadFormFile(*formFile)
		if err != nil {
			log.Fatalf("Failed to load form file: %v", err)
		}
	}
	now := time.Now().UnixMilli()
	form.CreatedAt = now
	form.UpdatedAt = now

	forms := db.Collection("forms")
	if existing := forms.FindOne(ctx, bson.M{"name": form.Name}); existing.Err() == nil {
		log.Fatalf("Form %q already exists", form.Name)
	}
	if _, err := forms.InsertOne(ctx, form); err != nil {
		log.Fatalf("Failed to insert form: %v", err)
	}

	fmt.Printf("Seeded form %q with %d sections\n", form.Name, len(form.Sections))
}

func seedUsers(ctx context.Context, db *mongo.Database) {
	users := db.Collection("users")
	defaults := []model.User{
		{Username: "admin", Password: "password123", Role: model.RoleManagement},
		{Username: "auditor1", Password: "password123", Role: model.RoleAuditor},
		{Username: "master1", Password: "password123", Role: model.RoleMasterAuditor},
		{Username: "partner1", Password: "password123", Role: model.RolePartner},
	}
	for _, u := range defaults {
		if existing := users.FindOne(ctx, bson.M{"username": u.Username}); existing.Err() == nil {
			continue
		}
		u.ID = "user_" + uuid.New().String()[:8]
		if _, err := users.InsertOne(ctx, u); err != nil {
			log.Fatalf("Failed to insert user %q: %v", u.Username, err)
		}
		fmt.Printf("Seeded user %s (%s)\n", u.Username, u.Role)
	}
}

func loadFormFile(path string) (*model.FormDefinition, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var yf yamlForm
	if err := yaml.Unmarshal(data, &yf); err != nil {
		return nil, err
	}
	if yf.Name == "" || len(yf.Sections) == 0 {
		return nil, fmt.Errorf("form file %s: name and at least one section are required", path)
	}

	form := &model.FormDefinition{Name: yf.Name}
	for _, ys := range yf.Sections {
		sec := model.Section{
			Name:         ys.Name,
			IsRepeatable: ys.IsRepeatable,
			ControlledBy: ys.ControlledBy,
		}
		for _, yq := range ys.Questions {
			sec.Questions = append(sec.Questions, model.Question{
				ID:                yq.ID,
				Text:              yq.Text,
				Type:              model.QuestionType(yq.Type),
				Options:           yq.Options,
				Weightage:         yq.Weightage,
				Mandatory:         yq.Mandatory,
				IsFatal:           yq.IsFatal,
				EnableRemarks:     yq.EnableRemarks,
				GrazingLogic:      yq.GrazingLogic,
				GrazingPercentage: yq.GrazingPercentage,
				ControlledBy:      yq.ControlledBy,
				ControlsSection:   yq.ControlsSection,
				VisibleOnValues:   yq.VisibleOnValues,
			})
		}
		form.Sections = append(form.Sections, sec)
	}
	return form, nil
}

func demoForm() *model.FormDefinition {
	return &model.FormDefinition{
		Name: "Customer Call QA",
		Sections: []model.Section{
			{
				Name: "Call Opening",
				Questions: []model.Question{
					{
						ID:        "q_greeting",
						Text:      "Did the agent use the standard greeting?",
						Type:      model.QuestionTypeDropdown,
						Options:   "Yes, No, NA",
						Weightage: 10,
						Mandatory: true,
					},
					{
						ID:        "q_verification",
						Text:      "Did the agent verify the customer's identity?",
						Type:      model.QuestionTypeDropdown,
						Options:   "Yes, No",
						Weightage: 50,
						Mandatory: true,
						IsFatal:   true,
					},
					{
						ID:              "q_escalated",
						Text:            "Was the call escalated?",
						Type:            model.QuestionTypeDropdown,
						Options:         "Yes, No",
						Weightage:       0,
						Mandatory:       true,
						ControlsSection: "Escalation Handling",
						VisibleOnValues: "Yes",
					},
				},
			},
			{
				Name:         "Escalation Handling",
				ControlledBy: "q_escalated",
				Questions: []model.Question{
					{
						ID:        "q_esc_process",
						Text:      "Did the agent follow the escalation process?",
						Type:      model.QuestionTypeDropdown,
						Options:   "Yes, No",
						Weightage: 20,
						Mandatory: true,
					},
				},
			},
			{
				Name:         "Interaction 1",
				IsRepeatable: true,
				Questions: []model.Question{
					{
						ID:                "q_resolution",
						Text:              "Did the agent resolve the customer's issue?",
						Type:              model.QuestionTypeDropdown,
						Options:           "Yes, No, NA",
						Weightage:         30,
						Mandatory:         true,
						GrazingLogic:      true,
						GrazingPercentage: 50,
						EnableRemarks:     true,
					},
					{
						ID:        "q_another",
						Text:      "Was there another interaction on this call?",
						Type:      model.QuestionTypeDropdown,
						Options:   "Yes, No",
						Weightage: 0,
					},
				},
			},
		},
	}
}
