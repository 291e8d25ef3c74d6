package helpers

import (
	"errors"
	"fmt"
	"reflect"
	"strconv"

	"github.com/thedevsaddam/govalidator"
)

func init() {
	govalidator.AddCustomRule("ticket_quantity", func(field string, rule string, message string, value interface{}) error {
		rv := reflect.ValueOf(value)
		if rv.Kind() == reflect.String {
			str := value.(string)
			if str == "" {
				return nil
			}
			if n, err := strconv.Atoi(str); err != nil || n < 0 {
				if message != "" {
					return errors.New(message)
				}
				return fmt.Errorf("The %s field must be a whole number of tickets", field)
			}
		}
		return nil
	})
}
