// Package validation содержит синтаксические правила для полей входящих заказов.
package validation

import (
	"regexp"

	"github.com/haxsysgit/coursework-backend/internal/domain"
)

var (
	nameRe  = regexp.MustCompile(`^[A-Za-z ]+$`)
	phoneRe = regexp.MustCompile(`^[0-9]+$`)
)

// ValidName допускает только латинские буквы и пробелы
func ValidName(s string) bool { return nameRe.MatchString(s) }

// ValidPhone допускает только цифры
func ValidPhone(s string) bool { return phoneRe.MatchString(s) }

// Contact результат проверки контактных полей заказа
type Contact struct {
	NameOK  bool
	PhoneOK bool
}

// OK сообщает, что оба поля прошли проверку
func (c Contact) OK() bool { return c.NameOK && c.PhoneOK }

// CheckContact проверяет имя и телефон из тела заказа.
// Отсутствующее или не-строковое значение проваливается так же, как некорректная строка.
func CheckContact(name, phone domain.Text) Contact {
	return Contact{
		NameOK:  name.IsString && ValidName(name.Value),
		PhoneOK: phone.IsString && ValidPhone(phone.Value),
	}
}
