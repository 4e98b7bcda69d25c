// Package source opens journals named by URLs:
//
//	journal://?files=local&users=system
//	namespace://NAME?include-default=1
//	namespace://*
//	dir:///var/log/journal/ID?os-root=1
//	files:///a.journal,/b.journal
//
// files takes all, local, runtime or local-runtime. users takes all, system,
// user or system-user.
package source

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/dynoinc/sdjournal"
)

// Default is the local journal of all users.
const Default = "journal://"

// Kind is what a Source opens.
type Kind int

const (
	Local Kind = iota
	Namespace
	AllNamespaces
	Directory
	Files
)

// Source is a parsed source URL.
type Source struct {
	Kind       Kind
	Namespace  string
	Path       string
	Paths      []string
	Files      sdjournal.FileFlags
	Users      sdjournal.UserFlags
	Namespaces sdjournal.NamespaceFlags
	PathFlags  sdjournal.PathFlags

	url string
}

func (s Source) String() string {
	return s.url
}

// Parse parses a source URL. An empty string is the Default source.
func Parse(sourceURL string) (Source, error) {
	if sourceURL == "" {
		sourceURL = Default
	}
	u, err := url.Parse(sourceURL)
	if err != nil {
		return Source{}, fmt.Errorf("parsing source URL: %w", err)
	}

	s := Source{url: sourceURL}
	q := u.Query()
	if s.Files, err = fileFlags(q.Get("files")); err != nil {
		return Source{}, err
	}
	if s.Users, err = userFlags(q.Get("users")); err != nil {
		return Source{}, err
	}

	switch u.Scheme {
	case "journal":
		s.Kind = Local

	case "namespace":
		switch u.Host {
		case "":
			return Source{}, fmt.Errorf("namespace is empty")
		case "*":
			s.Kind = AllNamespaces
		default:
			s.Kind = Namespace
			s.Namespace = u.Host
		}
		include, err := flag(q, "include-default")
		if err != nil {
			return Source{}, err
		}
		if include {
			s.Namespaces = sdjournal.DefaultNamespaceIncluded
		}

	case "dir":
		if u.Path == "" {
			return Source{}, fmt.Errorf("directory is empty")
		}
		s.Kind = Directory
		s.Path = u.Path
		osRoot, err := flag(q, "os-root")
		if err != nil {
			return Source{}, err
		}
		if osRoot {
			s.PathFlags = sdjournal.PathToOSRoot
		}

	case "files":
		for _, p := range strings.Split(u.Path, ",") {
			if p != "" {
				s.Paths = append(s.Paths, p)
			}
		}
		if len(s.Paths) == 0 {
			return Source{}, fmt.Errorf("file list is empty")
		}
		s.Kind = Files

	default:
		return Source{}, fmt.Errorf("unsupported source scheme: %s", u.Scheme)
	}

	return s, nil
}

// Open opens the journal the source names.
func (s Source) Open(lib *sdjournal.Library) (*sdjournal.Journal, error) {
	switch s.Kind {
	case Namespace:
		return lib.OpenNamespace(s.Namespace, s.Namespaces, s.Files, s.Users)
	case AllNamespaces:
		return lib.OpenAllNamespaces(s.Files, s.Users)
	case Directory:
		return lib.OpenDirectory(s.Path, s.PathFlags, s.Users)
	case Files:
		return lib.OpenFiles(s.Paths...)
	default:
		return lib.Open(s.Files, s.Users)
	}
}

// Open parses sourceURL and opens it.
func Open(lib *sdjournal.Library, sourceURL string) (*sdjournal.Journal, error) {
	s, err := Parse(sourceURL)
	if err != nil {
		return nil, err
	}
	j, err := s.Open(lib)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", s, err)
	}
	return j, nil
}

func fileFlags(v string) (sdjournal.FileFlags, error) {
	switch v {
	case "", "all":
		return sdjournal.AllFiles, nil
	case "local":
		return sdjournal.LocalOnly, nil
	case "runtime":
		return sdjournal.RuntimeOnly, nil
	case "local-runtime":
		return sdjournal.LocalRuntimeOnly, nil
	}
	return 0, fmt.Errorf("unsupported files value: %q", v)
}

func userFlags(v string) (sdjournal.UserFlags, error) {
	switch v {
	case "", "all":
		return sdjournal.AllUsers, nil
	case "system":
		return sdjournal.SystemOnly, nil
	case "user":
		return sdjournal.CurrentUserOnly, nil
	case "system-user":
		return sdjournal.CurrentUserAndSystem, nil
	}
	return 0, fmt.Errorf("unsupported users value: %q", v)
}

func flag(q url.Values, key string) (bool, error) {
	v := q.Get(key)
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, fmt.Errorf("parsing %s: %w", key, err)
	}
	return b, nil
}
