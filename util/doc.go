// Package util holds small generic helpers shared by apikit packages.
package util
