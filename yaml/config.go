// Package yaml reads bulk output configuration from YAML files.
//
// A file has a global section and a map of destinations, each holding an
// optional order and a map of template formats:
//
//	global:
//	  formats:
//	    rating: "IMDb %(rating)s"
//	destinations:
//	  "#films":
//	    order: "title;rating,runtime"
//	    formats:
//	      title: "%(name)s [%(year)s]"
//
// An order may also be written as a list of lines, each a list of
// template names.
package yaml

import (
	"context"
	"errors"
	"io"
	"sort"
	"strings"

	"github.com/fwojciec/filmcard"
	"gopkg.in/yaml.v3"
)

// File is the decoded form of a configuration file.
type File struct {
	Global       Section            `yaml:"global"`
	Destinations map[string]Section `yaml:"destinations"`
}

// Section holds the settings of one destination.
type Section struct {
	Order   Order             `yaml:"order"`
	Formats map[string]string `yaml:"formats"`
}

// Order is a line specification written either as "a,b;c" or as a list of
// lists.
type Order struct {
	Spec filmcard.LineSpec
	Set  bool
}

// UnmarshalYAML accepts a scalar line spec or a sequence of sequences.
func (o *Order) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		o.Spec = filmcard.ParseLineSpec(node.Value)
	case yaml.SequenceNode:
		var lines [][]string
		if err := node.Decode(&lines); err != nil {
			return err
		}
		o.Spec = filmcard.ParseLineSpec(filmcard.LineSpec(lines).String())
	default:
		return filmcard.Errorf(filmcard.EINVALID, "line %d: order must be a string or a list of lists", node.Line)
	}
	o.Set = true
	return nil
}

// Parse decodes a configuration file from r and returns its settings in a
// stable order: global first, then destinations by name, formats by name
// before order. Every format is validated; unknown keys are rejected.
func Parse(r io.Reader) ([]*filmcard.Setting, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		if filmcard.ErrorCode(err) == filmcard.EINVALID {
			return nil, err
		}
		return nil, filmcard.Errorf(filmcard.EINVALID, "invalid config file: %v", err)
	}

	settings, err := f.Global.settings(filmcard.GlobalDestination)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(f.Destinations))
	for name := range f.Destinations {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		if strings.TrimSpace(name) == "" {
			return nil, filmcard.Errorf(filmcard.EINVALID, "destination name required; use the global section instead")
		}
		s, err := f.Destinations[name].settings(name)
		if err != nil {
			return nil, err
		}
		settings = append(settings, s...)
	}
	return settings, nil
}

func (s Section) settings(destination string) ([]*filmcard.Setting, error) {
	names := make([]string, 0, len(s.Formats))
	for name := range s.Formats {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []*filmcard.Setting
	for _, name := range names {
		format := s.Formats[name]
		if err := filmcard.ValidateFormat(format); err != nil {
			return nil, filmcard.Errorf(filmcard.EINVALID, "%s: format %q: %s", label(destination), name, filmcard.ErrorMessage(err))
		}
		out = append(out, &filmcard.Setting{
			Destination: destination,
			Key:         filmcard.FormatKeyPrefix + name,
			Value:       format,
		})
	}
	if s.Order.Set {
		if len(s.Order.Spec) == 0 {
			return nil, filmcard.Errorf(filmcard.EINVALID, "%s: order must name at least one template", label(destination))
		}
		out = append(out, &filmcard.Setting{
			Destination: destination,
			Key:         filmcard.SettingOrder,
			Value:       s.Order.Spec.String(),
		})
	}
	return out, nil
}

func label(destination string) string {
	if destination == filmcard.GlobalDestination {
		return "global"
	}
	return "destination " + destination
}

// Import parses r and stores every setting through svc. The whole file is
// validated before anything is written. Returns the number of settings
// stored.
func Import(ctx context.Context, svc filmcard.ConfigService, r io.Reader) (int, error) {
	settings, err := Parse(r)
	if err != nil {
		return 0, err
	}

	for i, s := range settings {
		if name, ok := s.FormatName(); ok {
			err = svc.SetFormat(ctx, s.Destination, name, s.Value)
		} else {
			err = svc.SetOrder(ctx, s.Destination, filmcard.ParseLineSpec(s.Value))
		}
		if err != nil {
			return i, err
		}
	}
	return len(settings), nil
}
