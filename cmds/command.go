package cmds

import (
	"fmt"
	"reflect"
	"strings"
)

// Command is either a function taking its arguments from the command line, or a set of sub commands.
type Command struct {
	Func        reflect.Value
	Subs        map[string]*Command
	Description string
	Aliases     []string
}

func (c *Command) Desc(desc string) *Command {
	c.Description = desc
	return c
}

func (c *Command) Alias(names ...string) *Command {
	c.Aliases = append(c.Aliases, names...)
	return c
}

// Params describes the arguments of a function command, like "<string> [int...]".
func (c *Command) Params() string {
	if !c.Func.IsValid() {
		return ""
	}
	fnType := c.Func.Type()
	parts := make([]string, 0, fnType.NumIn())
	for i := range fnType.NumIn() {
		t := fnType.In(i)
		switch {
		case fnType.IsVariadic() && i == fnType.NumIn()-1:
			parts = append(parts, "["+typeName(t.Elem())+"...]")
		case t.Kind() == reflect.Pointer:
			parts = append(parts, "<"+typeName(t.Elem())+">")
		default:
			parts = append(parts, "<"+typeName(t)+">")
		}
	}
	return strings.Join(parts, " ")
}

func typeName(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "bool"
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	}
	return t.String()
}

func Func(fn any) *Command {
	fnValue := reflect.ValueOf(fn)

	if fnValue.Kind() != reflect.Func {
		panic(fmt.Errorf("must be function, got %T", fn))
	}

	numRets := fnValue.Type().NumOut()
	if numRets >= 2 {
		panic(fmt.Errorf("must return 0 or 1 value"))
	}
	if numRets == 1 && fnValue.Type().Out(0) != errorType {
		panic(fmt.Errorf("must return error"))
	}

	return &Command{
		Func: fnValue,
	}
}

func Sub(subs map[string]*Command) *Command {
	return &Command{
		Subs: subs,
	}
}
