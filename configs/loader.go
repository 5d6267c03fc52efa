package configs

import (
	"iter"
	"os"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
)

// Loader reads CUE files lazily. Each file is unified with the schema, so
// schema defaults are visible to lookups.
type Loader struct {
	getRoots func() ([]rootInfo, error)
}

type source struct {
	name    string
	content []byte
}

func NewLoader(filePaths []string, schemaSrc string) Loader {
	return newLoader(schemaSrc, func() (ret []source, err error) {
		for _, filePath := range filePaths {
			content, err := os.ReadFile(filePath)
			if err != nil {
				return nil, wrap(err)
			}
			ret = append(ret, source{
				name:    filePath,
				content: content,
			})
		}
		return
	})
}

// NewSourceLoader loads a single in-memory CUE source.
func NewSourceLoader(name string, content string, schemaSrc string) Loader {
	return newLoader(schemaSrc, func() ([]source, error) {
		return []source{{
			name:    name,
			content: []byte(content),
		}}, nil
	})
}

func newLoader(schemaSrc string, getSources func() ([]source, error)) Loader {
	return Loader{

		getRoots: sync.OnceValues(func() (ret []rootInfo, err error) {
			sources, err := getSources()
			if err != nil {
				return nil, err
			}

			ctx := cuecontext.New()

			var schema cue.Value
			if schemaSrc != "" {
				schema = ctx.CompileString("close({" + schemaSrc + "})")
				if err := schema.Err(); err != nil {
					return nil, wrap(err)
				}
			}

			for _, src := range sources {
				value := ctx.CompileBytes(
					src.content,
					cue.Filename(src.name),
				)
				if err = value.Err(); err != nil {
					return nil, wrap(err)
				}

				if schema.Exists() {
					value = schema.Unify(value)
					if err := value.Validate(); err != nil {
						return nil, wrap(err)
					}
				}

				ret = append(ret, rootInfo{
					value: value,
					path:  src.name,
				})
			}

			return
		}),
	}
}

type rootInfo struct {
	value cue.Value
	path  string
}

// IterCueValues yields the value at path in every file that defines it.
func (l Loader) IterCueValues(path string) iter.Seq2[*cue.Value, error] {
	return func(yield func(*cue.Value, error) bool) {
		roots, err := l.getRoots()
		if err != nil {
			yield(nil, err)
			return
		}

		cuePath := cue.ParsePath(path)
		for _, info := range roots {
			value := info.value.LookupPath(cuePath)
			if !value.Exists() {
				continue
			}
			if err := value.Err(); err == nil {
				if !yield(&value, nil) {
					break
				}
			}
		}
	}
}

func (l Loader) AssignFirst(path string, target any) error {
	roots, err := l.getRoots()
	if err != nil {
		return err
	}

	cuePath := cue.ParsePath(path)
	for _, info := range roots {
		value := info.value.LookupPath(cuePath)
		if !value.Exists() {
			continue
		}
		if err := value.Err(); err == nil {
			if err := value.Decode(target); err != nil {
				return wrap(err)
			}
			return nil
		}
	}

	return ErrValueNotFound
}
