package main

import (
	"errors"

	"github.com/omeyang/ipv6calc/pkg/util/xcidr"
)

// 面向用户的单行消息。
const (
	msgMissingArgument     = "You should provide an IPv6 CIDR as a parameter."
	msgMalformedCIDR       = "Wrong CIDR format"
	msgInvalidAddress      = "Wrong IPv6 address"
	msgInvalidPrefixLength = "Wrong subnet prefix length"
	msgUnhandled           = "An unhandled error occurred."
)

// exitError 表示输出已完成，只需设置退出码。
type exitError struct {
	code int
}

func (e *exitError) Error() string { return "" }

// usageError 表示参数或配置错误，退出码为 2。
type usageError struct {
	msg string
}

func (e *usageError) Error() string { return e.msg }

// messageFor 把错误映射为面向用户的消息，未识别的错误返回通用消息。
func messageFor(err error) string {
	switch {
	case errors.Is(err, xcidr.ErrMissingArgument):
		return msgMissingArgument
	case errors.Is(err, xcidr.ErrMalformedCIDR):
		return msgMalformedCIDR
	case errors.Is(err, xcidr.ErrInvalidAddress):
		return msgInvalidAddress
	case errors.Is(err, xcidr.ErrInvalidPrefixLength):
		return msgInvalidPrefixLength
	default:
		return msgUnhandled
	}
}
