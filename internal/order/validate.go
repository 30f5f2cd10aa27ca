package order

import (
	"regexp"
	"strings"

	"github.com/Yana3030-web/stroymaster-website/internal/model"
)

// Russian phone number: optional +7 or 8, then 3-3-2-2 digit groups with
// optional separators and parentheses around the area code.
var phonePattern = regexp.MustCompile(`^(\+7|8)[\s-]?\(?\d{3}\)?[\s-]?\d{3}[\s-]?\d{2}[\s-]?\d{2}$`)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// ValidateForm checks every field and returns all problems at once, keyed by
// field name, so the user sees the full picture in a single pass. An empty
// map means the form is valid. Message is free text and never validated.
func ValidateForm(form *model.OrderForm) map[string]string {
	errs := make(map[string]string)

	if strings.TrimSpace(form.Name) == "" {
		errs["name"] = "Имя обязательно"
	}

	if strings.TrimSpace(form.Phone) == "" {
		errs["phone"] = "Телефон обязателен"
	} else if !phonePattern.MatchString(form.Phone) {
		errs["phone"] = "Неверный формат телефона"
	}

	if strings.TrimSpace(form.Email) == "" {
		errs["email"] = "Email обязателен"
	} else if !emailPattern.MatchString(form.Email) {
		errs["email"] = "Неверный формат email"
	}

	if strings.TrimSpace(form.Address) == "" {
		errs["address"] = "Адрес обязателен"
	}

	return errs
}
