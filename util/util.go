// Package util loads and writes the yaml files the tools work from.
package util

import (
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	nt "joinfilter/entity"
)

func OpenLog(path string, mode os.FileMode) (file io.Writer) {

	var err error
	file, err = os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, mode)
	if err != nil {
		fmt.Printf("warning: %s\n", err.Error())
		file = io.Discard
	}

	return
}

func CloseLog(file io.Writer) {

	actually, ok := file.(*os.File)
	if ok {
		actually.Close()
	}
}

// LoadConfig unmarshals yaml (or json) from path into cfg.
func LoadConfig(cfg any, path string) (err error) {

	data, err := os.ReadFile(path)
	if err != nil {
		err = errors.Wrapf(err, "failed to read from %s", path)
		return
	}

	err = yaml.Unmarshal(data, cfg)
	err = errors.Wrapf(err, "failed to unmarshal %s", path)
	return
}

func WriteConfig(cfg any, path string, mode os.FileMode) (err error) {

	data, err := yaml.Marshal(cfg)
	if err != nil {
		err = errors.Wrapf(err, "failed to marshal")
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// SampleConfig writes data to path unless something is already there.
func SampleConfig(data []byte, path string, mode os.FileMode) (err error) {

	_, err = os.Stat(path)
	if err == nil {
		return
	}

	err = os.WriteFile(path, data, mode)
	err = errors.Wrapf(err, "failed to write to %s", path)
	return
}

// LoadFilters reads a filter array from a yaml or json file.
func LoadFilters(path string) (filters nt.Filters, err error) {

	err = LoadConfig(&filters, path)
	return
}

// LoadFilter reads a single filter from a yaml or json file.
func LoadFilter(path string) (filter nt.Filter, err error) {

	err = LoadConfig(&filter, path)
	if err != nil {
		return
	}
	if filter == nil {
		err = errors.Errorf("no filter found in %s", path)
	}
	return
}

// WriteFilters marshals filters as yaml to w.
func WriteFilters(w io.Writer, filters nt.Filters) (err error) {

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)

	err = enc.Encode(filters)
	if err != nil {
		err = errors.Wrapf(err, "failed to encode filters")
		return
	}

	err = enc.Close()
	err = errors.Wrapf(err, "failed to flush filters")
	return
}
