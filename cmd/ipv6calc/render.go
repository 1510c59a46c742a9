package main

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/omeyang/ipv6calc/pkg/config/xconf"
	"github.com/omeyang/ipv6calc/pkg/util/xbatch"
	"github.com/omeyang/ipv6calc/pkg/util/xcidr"
)

// record 是 json/yaml 输出中的一项。
type record struct {
	Input  string         `json:"input" yaml:"input"`
	Result *xcidr.Summary `json:"result,omitempty" yaml:"result,omitempty"`
	Error  string         `json:"error,omitempty" yaml:"error,omitempty"`
}

// render 按 format 输出结果。
// single 为 true 时 text 输出五行（或一行消息），json/yaml 输出单个对象；否则输出列表。
func render(w io.Writer, format string, outcomes []xbatch.Outcome, single bool) error {
	switch format {
	case xconf.OutputJSON, xconf.OutputYAML:
		records := make([]record, len(outcomes))
		for i, o := range outcomes {
			records[i] = toRecord(o)
		}
		var v any = records
		if single {
			v = records[0]
		}
		if format == xconf.OutputJSON {
			return writeJSON(w, v)
		}
		return writeYAML(w, v)
	default:
		if single {
			return writeOutcome(w, outcomes[0])
		}
		return writeBlocks(w, outcomes)
	}
}

func toRecord(o xbatch.Outcome) record {
	if o.Err != nil {
		return record{Input: o.Input, Error: messageFor(o.Err)}
	}
	s := o.CIDR.Summary()
	return record{Input: o.Input, Result: &s}
}

// writeOutcome 输出五行结果，失败时输出一行消息。
func writeOutcome(w io.Writer, o xbatch.Outcome) error {
	if o.Err != nil {
		_, err := fmt.Fprintln(w, messageFor(o.Err))
		return err
	}

	c := o.CIDR
	start, end := c.HostRange()
	_, err := fmt.Fprintf(w,
		"Expanded Notation: %s\n"+
			"Condensed Notation: %s\n"+
			"Prefix Length: %d\n"+
			"Host Range: %s - %s\n"+
			"Total number of hosts: %s\n",
		c.Expanded(), c.Condensed(), c.Bits(), start, end, xcidr.FormatHostCount(c.HostCount()))
	return err
}

// writeBlocks 逐个输出 "CIDR: <输入>" 加结果，块之间以空行分隔。
func writeBlocks(w io.Writer, outcomes []xbatch.Outcome) error {
	for i, o := range outcomes {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintf(w, "CIDR: %s\n", o.Input); err != nil {
			return err
		}
		if err := writeOutcome(w, o); err != nil {
			return err
		}
	}
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return err
	}
	return enc.Close()
}
