package service

import (
	"errors"
	"fmt"
	"net/url"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/net/idna"

	"github.com/octobees/battlecards/internal/entity"
	"github.com/octobees/battlecards/internal/repository"
)

var (
	idnaProfile = idna.Lookup
	validate    = newValidator()
)

// battlecardInput holds the attributes checked before a record is written.
type battlecardInput struct {
	CompanyName string `json:"company_name" validate:"required,max=255"`
	ThreatLevel string `json:"threat_level" validate:"omitempty,threat_level"`
	Website     string `json:"website" validate:"omitempty,max=2048"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("threat_level", validThreatLevel); err != nil {
		panic(fmt.Sprintf("register threat_level validation: %v", err))
	}
	return v
}

func validThreatLevel(fl validator.FieldLevel) bool {
	_, ok := entity.ParseThreatLevel(fl.Field().String())
	return ok
}

// normalizeBattlecard trims and validates the user-editable attributes that
// carry rules. Threat levels are stored in their canonical spelling and the
// website host is converted to its ASCII form.
func normalizeBattlecard(card *entity.Battlecard) error {
	if card == nil {
		return errors.New("battlecard payload is nil")
	}
	card.CompanyName = strings.TrimSpace(card.CompanyName)
	card.ThreatLevel = strings.TrimSpace(card.ThreatLevel)
	card.Website = strings.TrimSpace(card.Website)

	input := battlecardInput{
		CompanyName: card.CompanyName,
		ThreatLevel: card.ThreatLevel,
		Website:     card.Website,
	}
	if err := validate.Struct(input); err != nil {
		return toValidationError(err)
	}

	if level, ok := entity.ParseThreatLevel(card.ThreatLevel); ok {
		card.ThreatLevel = string(level)
	}

	if card.Website != "" {
		website, err := normalizeWebsite(card.Website)
		if err != nil {
			return &repository.ValidationError{Field: "website", Message: err.Error()}
		}
		card.Website = website
	}

	card.EnsureDefaults()
	return nil
}

func toValidationError(err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	switch fe.Tag() {
	case "required":
		return &repository.ValidationError{Field: fe.Field(), Message: "company name is required"}
	case "threat_level":
		return &repository.ValidationError{Field: fe.Field(), Message: "threat level must be one of " + threatVocabulary()}
	case "max":
		return &repository.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("must be at most %s characters", fe.Param())}
	default:
		return &repository.ValidationError{Field: fe.Field(), Message: fmt.Sprintf("failed %s validation", fe.Tag())}
	}
}

func threatVocabulary() string {
	names := make([]string, len(entity.ThreatLevels))
	for i, level := range entity.ThreatLevels {
		names[i] = string(level)
	}
	return strings.Join(names, ", ")
}

// normalizeWebsite accepts bare hosts ("acme.com") as well as full URLs and
// returns an https URL whose host is IDNA-encoded.
func normalizeWebsite(raw string) (string, error) {
	candidate := raw
	if !strings.Contains(candidate, "://") {
		candidate = "https://" + candidate
	}
	u, err := url.Parse(candidate)
	if err != nil || u.Hostname() == "" {
		return "", errors.New("invalid website url")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported website scheme %q", u.Scheme)
	}

	host, err := idnaProfile.ToASCII(strings.Trim(u.Hostname(), "."))
	if err != nil || host == "" || !strings.Contains(host, ".") {
		return "", errors.New("invalid website host")
	}
	if port := u.Port(); port != "" {
		host = host + ":" + port
	}
	u.Host = host
	return u.String(), nil
}
