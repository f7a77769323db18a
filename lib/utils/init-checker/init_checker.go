package initchecker

import (
	"fmt"
	"reflect"
)

// CheckInit принимает пары имя, значение и паникует на первой неинициализированной зависимости.
// Типизированный nil внутри интерфейса тоже считается неинициализированным.
func CheckInit(pairs ...any) {
	if err := Check(pairs...); err != nil {
		panic(err.Error())
	}
}

func Check(pairs ...any) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("CheckInit: нечетное количество аргументов")
	}
	for i := 0; i < len(pairs); i += 2 {
		name, ok := pairs[i].(string)
		if !ok {
			return fmt.Errorf("CheckInit: первый элемент пары должен быть строкой")
		}
		if isNil(pairs[i+1]) {
			return fmt.Errorf("зависимость %s не инициализирована", name)
		}
	}
	return nil
}

func isNil(value any) bool {
	if value == nil {
		return true
	}
	v := reflect.ValueOf(value)
	switch v.Kind() {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return v.IsNil()
	}
	return false
}
