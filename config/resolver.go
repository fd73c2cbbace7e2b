package config

import (
	"fmt"
	"strings"
)

// Resolver finds config and env files for a service.
type Resolver struct {
	FileSystem FileSystem
}

// ResolvedFiles contains the resolved config and env file paths. Empty paths
// mean nothing was found.
type ResolvedFiles struct {
	ConfigFile string
	EnvFile    string
}

// ResolveFiles returns explicit paths when they exist, otherwise the first
// match in the standard search locations.
func (r *Resolver) ResolveFiles(serviceName string, opts LoaderConfig) ResolvedFiles {
	var resolved ResolvedFiles

	if opts.ConfigFile != "" {
		if r.FileSystem.Exists(opts.ConfigFile) {
			resolved.ConfigFile = opts.ConfigFile
		}
	} else {
		resolved.ConfigFile = r.first(configSearchPaths(serviceName))
	}

	if opts.EnvFile != "" {
		if r.FileSystem.Exists(opts.EnvFile) {
			resolved.EnvFile = opts.EnvFile
		}
	} else {
		resolved.EnvFile = r.first(envSearchPaths(serviceName))
	}

	return resolved
}

func (r *Resolver) first(paths []string) string {
	for _, p := range paths {
		if r.FileSystem.Exists(p) {
			return p
		}
	}
	return ""
}

// shortName strips everything up to the last dash: "acme-items" -> "items".
func shortName(serviceName string) string {
	if idx := strings.LastIndex(serviceName, "-"); idx != -1 {
		return serviceName[idx+1:]
	}
	return serviceName
}

func configSearchPaths(serviceName string) []string {
	var paths []string
	for _, name := range uniqueNames(serviceName) {
		for _, up := range []string{".", "..", "../.."} {
			paths = append(paths, fmt.Sprintf("%s/cmd/%s/config.yml", up, name))
		}
	}
	return append(paths, "./config/config.yml", "../config/config.yml", "./config.yml")
}

func envSearchPaths(serviceName string) []string {
	var paths []string
	for _, file := range []string{".env." + serviceName, ".env"} {
		for _, name := range uniqueNames(serviceName) {
			paths = append(paths, fmt.Sprintf("./cmd/%s/%s", name, file))
		}
		paths = append(paths, "./config/"+file, "./"+file, "../"+file)
	}
	return paths
}

func uniqueNames(serviceName string) []string {
	if s := shortName(serviceName); s != serviceName {
		return []string{serviceName, s}
	}
	return []string{serviceName}
}
