// Package envprofile derives the API environment file of a generated project.
//
// Synthesize is a pure function of (variant, auth mode, base keys): the
// sections present and the source key behind every assignment follow a
// fixed decision table, and absent keys resolve to "" or to a documented
// fallback literal instead of failing. Parse turns the base KEY=VALUE
// document into the KeyMap consumed by Synthesize.
package envprofile

import "github.com/danieljhkim/projinit/internal/project"

// Section titles in document order.
const (
	SectionDatabase     = "Database"
	SectionSupabase     = "Supabase"
	SectionAuth         = "Authentication"
	SectionServer       = "Server"
	SectionAzureOpenAI  = "Azure OpenAI (BAML)"
	SectionAltProviders = "Alternative LLM Providers (BAML)"
)

// Fallbacks for keys that have a non-empty default.
const (
	DefaultLogLevel      = "INFO"
	DefaultCORSOrigins   = "http://localhost:4200"
	DefaultOllamaBaseURL = "http://localhost:11434/v1"
)

// ServerPort is the port every variant listens on.
const ServerPort = "8000"

// Synthesize builds the env document for a variant and auth mode.
// keys is only read; a nil KeyMap behaves as an empty one.
func Synthesize(variant project.Variant, auth project.AuthMode, keys *KeyMap) *Document {
	return synthesize(variant, auth, keys)
}

// SourceKeys lists the base keys read for a variant and auth mode, in
// document order. Keys outside this list never influence the output.
func SourceKeys(variant project.Variant, auth project.AuthMode) []string {
	rec := &recorder{}
	synthesize(variant, auth, rec)
	return rec.keys
}

// MissingKeys returns the SourceKeys absent from keys.
func MissingKeys(variant project.Variant, auth project.AuthMode, keys *KeyMap) []string {
	var missing []string
	for _, k := range SourceKeys(variant, auth) {
		if _, ok := keys.Lookup(k); !ok {
			missing = append(missing, k)
		}
	}
	return missing
}

type source interface {
	Lookup(key string) (string, bool)
}

// recorder is a source that holds no values and remembers every key asked for.
type recorder struct {
	keys []string
}

func (r *recorder) Lookup(key string) (string, bool) {
	r.keys = append(r.keys, key)
	return "", false
}

func get(src source, key string) string {
	v, _ := src.Lookup(key)
	return v
}

func getOr(src source, key, fallback string) string {
	if v, ok := src.Lookup(key); ok {
		return v
	}
	return fallback
}

func synthesize(variant project.Variant, auth project.AuthMode, keys source) *Document {
	doc := &Document{}

	doc.Sections = append(doc.Sections, databaseSection(variant, auth, keys))

	switch auth {
	case project.AuthSupabase:
		doc.Sections = append(doc.Sections, Section{
			Title: SectionSupabase,
			Entries: []Entry{
				{Key: "SUPABASE_URL", Value: get(keys, "SUPABASE_URL")},
				{Key: "SUPABASE_PUBLISHABLE_KEY", Value: get(keys, "SUPABASE_PUBLISHABLE_KEY")},
			},
		})
	case project.AuthToken:
		doc.Sections = append(doc.Sections, Section{
			Title:   SectionAuth,
			Entries: []Entry{{Key: "AUTH_TOKEN", Value: get(keys, "AUTH_TOKEN")}},
		})
	}

	doc.Sections = append(doc.Sections,
		serverSection(variant, keys),
		Section{
			Title: SectionAzureOpenAI,
			Entries: []Entry{
				{Key: "AZURE_OPENAI_BASE_URL", Value: get(keys, "AZURE_OPENAI_BASE_URL")},
				{Key: "AZURE_OPENAI_API_VERSION", Value: get(keys, "AZURE_OPENAI_API_VERSION")},
				{Key: "AZURE_OPENAI_API_KEY", Value: get(keys, "AZURE_OPENAI_API_KEY")},
			},
		},
		Section{
			Title: SectionAltProviders,
			Entries: []Entry{
				{Key: "ANTHROPIC_API_KEY", Value: get(keys, "ANTHROPIC_API_KEY")},
				{Key: "OPENAI_API_KEY", Value: get(keys, "OPENAI_API_KEY")},
				{Key: "GOOGLE_API_KEY", Value: get(keys, "GOOGLE_API_KEY")},
				{Key: "OLLAMA_BASE_URL", Value: getOr(keys, "OLLAMA_BASE_URL", DefaultOllamaBaseURL)},
			},
		},
	)

	return doc
}

// databaseSection picks the connection keys. NestJS reads its URLs through
// Prisma, which needs a second direct URL and quoted values.
func databaseSection(variant project.Variant, auth project.AuthMode, keys source) Section {
	s := Section{Title: SectionDatabase}
	supabase := auth == project.AuthSupabase

	switch {
	case supabase && variant == project.VariantNestJS:
		s.Entries = []Entry{
			{Key: "DATABASE_URL", Value: get(keys, "SUPABASE_DATABASE_URL_PRISMA"), Quoted: true},
			{Key: "DIRECT_URL", Value: get(keys, "SUPABASE_DIRECT_URL"), Quoted: true},
		}
	case supabase:
		s.Entries = []Entry{
			{Key: "DATABASE_URL", Value: get(keys, "SUPABASE_DATABASE_URL")},
			{Key: "DIRECT_DATABASE_URL", Value: get(keys, "SUPABASE_DIRECT_DATABASE_URL")},
		}
	case variant == project.VariantNestJS:
		s.Entries = []Entry{
			{Key: "DATABASE_URL", Value: get(keys, "DOCKER_DATABASE_URL_PRISMA"), Quoted: true},
			{Key: "DIRECT_URL", Value: get(keys, "DOCKER_DIRECT_URL"), Quoted: true},
		}
	default:
		s.Entries = []Entry{
			{Key: "DATABASE_URL", Value: get(keys, "DOCKER_DATABASE_URL")},
		}
	}
	return s
}

func serverSection(variant project.Variant, keys source) Section {
	s := Section{Title: SectionServer}
	if variant == project.VariantNestJS {
		s.Entries = []Entry{
			{Key: "NODE_ENV", Value: "development"},
			{Key: "PORT", Value: ServerPort},
		}
	} else {
		s.Entries = []Entry{
			{Key: "ENVIRONMENT", Value: "development"},
			{Key: "DEBUG", Value: "True"},
			{Key: "PORT", Value: ServerPort},
		}
	}
	s.Entries = append(s.Entries,
		Entry{Key: "LOG_LEVEL", Value: getOr(keys, "LOG_LEVEL", DefaultLogLevel)},
		Entry{Key: "CORS_ORIGINS", Value: getOr(keys, "CORS_ORIGINS", DefaultCORSOrigins)},
	)
	return s
}
