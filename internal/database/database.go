// Package database describes the database backing the provisioned
// environment and builds the client command that creates it.
package database

import (
	"fmt"
	"strings"

	ciErrors "github.com/mrz1836/moodle-plugin-ci/internal/errors"
	"github.com/mrz1836/moodle-plugin-ci/internal/process"
)

// Supported database types, named after the host platform's dbtype setting.
const (
	TypeMySQL    = "mysqli"
	TypeMariaDB  = "mariadb"
	TypePostgres = "pgsql"
)

// Options carries the connection settings from configuration.
type Options struct {
	Type string
	Host string
	Name string
	User string
	Pass string
}

// Database is a handle on the environment's database.
type Database interface {
	// Type returns the host platform's dbtype value.
	Type() string
	// Library returns the host platform's dblibrary value.
	Library() string
	Host() string
	Name() string
	User() string
	Pass() string
	// CreateCommand returns the client invocation that creates the database.
	CreateCommand() process.Command
}

type base struct {
	host string
	name string
	user string
	pass string
}

func (b base) Library() string { return "native" }
func (b base) Host() string    { return b.host }
func (b base) Name() string    { return b.name }
func (b base) User() string    { return b.user }
func (b base) Pass() string    { return b.pass }

// MySQL covers both mysqli and mariadb; they share the client.
type MySQL struct {
	base
	dbType string
}

// Type implements Database.
func (m *MySQL) Type() string { return m.dbType }

// CreateCommand implements Database.
func (m *MySQL) CreateCommand() process.Command {
	args := []string{"-u", m.user}
	if m.pass != "" {
		args = append(args, "--password="+m.pass)
	}
	args = append(args, "-h", m.host, "-e",
		fmt.Sprintf("CREATE DATABASE `%s` DEFAULT CHARACTER SET utf8mb4 DEFAULT COLLATE utf8mb4_unicode_ci;", m.name))
	return process.Command{Name: "mysql", Args: args}
}

// Postgres is the pgsql variant.
type Postgres struct {
	base
}

// Type implements Database.
func (p *Postgres) Type() string { return TypePostgres }

// CreateCommand implements Database.
func (p *Postgres) CreateCommand() process.Command {
	cmd := process.Command{
		Name: "psql",
		Args: []string{"-c", fmt.Sprintf(`CREATE DATABASE "%s";`, p.name), "-U", p.user, "-d", "postgres", "-h", p.host},
	}
	if p.pass != "" {
		cmd.Env = []string{"PGPASSWORD=" + p.pass}
	}
	return cmd
}

// New builds the Database for opts.Type, filling the conventional default
// user for the type when none is given.
func New(opts Options) (Database, error) {
	if strings.TrimSpace(opts.Name) == "" {
		return nil, fmt.Errorf("%w: database name is empty", ciErrors.ErrConfigInvalidDatabase)
	}

	b := base{host: opts.Host, name: opts.Name, user: opts.User, pass: opts.Pass}
	if b.host == "" {
		b.host = "localhost"
	}

	switch strings.ToLower(opts.Type) {
	case TypeMySQL, "mysql":
		if b.user == "" {
			b.user = "root"
		}
		return &MySQL{base: b, dbType: TypeMySQL}, nil
	case TypeMariaDB:
		if b.user == "" {
			b.user = "root"
		}
		return &MySQL{base: b, dbType: TypeMariaDB}, nil
	case TypePostgres, "postgres", "postgresql":
		if b.user == "" {
			b.user = "postgres"
		}
		return &Postgres{base: b}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ciErrors.ErrUnknownDatabase, opts.Type)
	}
}

// SupportedTypes lists the accepted type names.
func SupportedTypes() []string {
	return []string{TypeMySQL, TypeMariaDB, TypePostgres}
}

var (
	_ Database = (*MySQL)(nil)
	_ Database = (*Postgres)(nil)
)
