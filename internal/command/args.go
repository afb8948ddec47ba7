package command

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// usageError reports malformed arguments; the reply shows the usage line.
type usageError struct {
	usage string
}

func (e *usageError) Error() string {
	return "usage: " + e.usage
}

func usage(u string) error {
	return &usageError{usage: u}
}

// Call is one inbound command after the name has been resolved.
type Call struct {
	Sender   string
	Username string
	Args     []string
}

// Arg returns the i-th argument, or "" when absent.
func (c Call) Arg(i int) string {
	if i < 0 || i >= len(c.Args) {
		return ""
	}
	return strings.TrimSpace(c.Args[i])
}

// Rest joins the arguments from i onwards with single spaces.
func (c Call) Rest(i int) string {
	if i >= len(c.Args) {
		return ""
	}
	return strings.Join(strings.Fields(strings.Join(c.Args[i:], " ")), " ")
}

// Int parses the i-th argument as an integer.
func (c Call) Int(i int, u string) (int, error) {
	n, err := strconv.Atoi(c.Arg(i))
	if err != nil {
		return 0, usage(u)
	}
	return n, nil
}

// Decimal parses the i-th argument as a token amount.
func (c Call) Decimal(i int, u string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(c.Arg(i))
	if err != nil {
		return decimal.Zero, usage(u)
	}
	return d, nil
}

// Required returns the i-th argument or a usage error when it is empty.
func (c Call) Required(i int, u string) (string, error) {
	v := c.Arg(i)
	if v == "" {
		return "", usage(u)
	}
	return v, nil
}

// playerRef strips the decorations chat clients put around mentions.
func playerRef(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "<@")
	s = strings.TrimPrefix(s, "!")
	s = strings.TrimSuffix(s, ">")
	return strings.TrimPrefix(s, "@")
}
