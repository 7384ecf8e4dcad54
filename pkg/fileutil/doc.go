// Package fileutil provides bounded file reading for configuration sources.
package fileutil
