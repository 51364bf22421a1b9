package hocon

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"golang.org/x/net/proxy"
	"golang.org/x/tools/go/packages"

	"github.com/krakenconfig/hocon/hoconparser"
)

// FilesystemLoader resolves `include file(...)` and bare-path includes
// against a directory, the way the teacher's ParseFilesystems walks an
// fs.FS rather than touching os.Open directly (sqlparser/parser.go).
type FilesystemLoader struct {
	FS fs.FS
}

func NewFilesystemLoader(root string) *FilesystemLoader {
	return &FilesystemLoader{FS: os.DirFS(root)}
}

func (l *FilesystemLoader) Load(spec hoconparser.IncludeSpec, baseDir string) ([]hoconparser.LoadedSource, error) {
	fsys := l.FS
	if fsys == nil {
		fsys = os.DirFS(baseDir)
	}
	rel := filepath.ToSlash(spec.Target)
	matches, err := fs.Glob(fsys, rel)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		// fs.Glob treats a literal (non-glob) path with no match as "no
		// matches" rather than an error; surface that as a not-found error
		// so the required/optional distinction upstream behaves correctly.
		return nil, fmt.Errorf("file(%q): no such file", spec.Target)
	}
	var out []hoconparser.LoadedSource
	for _, m := range matches {
		data, rerr := fs.ReadFile(fsys, m)
		if rerr != nil {
			return nil, rerr
		}
		out = append(out, hoconparser.LoadedSource{
			Text:    string(data),
			File:    hoconparser.FileRef(m),
			BaseDir: filepath.Dir(m),
		})
	}
	return out, nil
}

// URLLoader resolves `include url(...)` (and bare http(s):// includes) over
// net/http, optionally tunneled through a SOCKS5 proxy named by the
// HOCON_SOCKS environment variable — the same opt-in pattern the teacher
// uses for SQL connections (cli/cmd/config.go's OpenSocks5Sql), repurposed
// here for fetching remote config fragments from a sandboxed network.
type URLLoader struct {
	Client  *http.Client
	Timeout time.Duration
}

func NewURLLoader() *URLLoader {
	client := &http.Client{Timeout: 15 * time.Second}
	if socksAddr := os.Getenv("HOCON_SOCKS"); socksAddr != "" {
		if dialer, err := proxy.SOCKS5("tcp", socksAddr, nil, proxy.Direct); err == nil {
			client.Transport = &http.Transport{
				DialContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
					return dialer.Dial(network, addr)
				},
			}
		}
	}
	return &URLLoader{Client: client}
}

func (l *URLLoader) Load(spec hoconparser.IncludeSpec, baseDir string) ([]hoconparser.LoadedSource, error) {
	req, err := http.NewRequest(http.MethodGet, spec.Target, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.Client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("url(%q): unexpected status %s", spec.Target, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return []hoconparser.LoadedSource{{Text: string(body), File: hoconparser.FileRef(spec.Target)}}, nil
}

// PackageLoader resolves `include package("import/path:file.conf")` by
// asking go/packages for the importing package's directory — repurposing
// the teacher's goparser dependency (originally used to find embed.FS
// arguments passed to sqlcode.Include) to find a Go package's files on disk
// instead.
type PackageLoader struct{}

func (PackageLoader) Load(spec hoconparser.IncludeSpec, baseDir string) ([]hoconparser.LoadedSource, error) {
	importPath, file := splitPackageTarget(spec.Target)
	if importPath == "" {
		return nil, fmt.Errorf("package(%q): expected \"import/path:file\"", spec.Target)
	}
	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedFiles, Dir: baseDir}
	pkgs, err := packages.Load(cfg, importPath)
	if err != nil {
		return nil, err
	}
	if len(pkgs) == 0 || len(pkgs[0].GoFiles) == 0 && len(pkgs[0].OtherFiles) == 0 {
		return nil, fmt.Errorf("package(%q): package not found", importPath)
	}
	var dir string
	if len(pkgs[0].GoFiles) > 0 {
		dir = filepath.Dir(pkgs[0].GoFiles[0])
	} else {
		dir = filepath.Dir(pkgs[0].OtherFiles[0])
	}
	full := filepath.Join(dir, file)
	data, err := os.ReadFile(full)
	if err != nil {
		return nil, err
	}
	return []hoconparser.LoadedSource{{Text: string(data), File: hoconparser.FileRef(full), BaseDir: dir}}, nil
}

func splitPackageTarget(target string) (importPath, file string) {
	for i := len(target) - 1; i >= 0; i-- {
		if target[i] == ':' {
			return target[:i], target[i+1:]
		}
	}
	return "", ""
}

// MultiLoader dispatches to the right concrete Loader by IncludeKind,
// implementing the core hoconparser.Loader interface the parser calls
// back through.
type MultiLoader struct {
	File    hoconparser.Loader
	URL     hoconparser.Loader
	Package hoconparser.Loader
}

func NewMultiLoader(root string) *MultiLoader {
	return &MultiLoader{
		File:    NewFilesystemLoader(root),
		URL:     NewURLLoader(),
		Package: PackageLoader{},
	}
}

func (m *MultiLoader) Load(spec hoconparser.IncludeSpec, baseDir string) ([]hoconparser.LoadedSource, error) {
	switch spec.Kind {
	case hoconparser.IncludeURL:
		return m.URL.Load(spec, baseDir)
	case hoconparser.IncludePackage:
		return m.Package.Load(spec, baseDir)
	default:
		return m.File.Load(spec, baseDir)
	}
}
