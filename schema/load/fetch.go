package load

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"
	"time"
)

// Fetcher resolves a `use`/`require` URI import to its source bytes (spec §6
// "Fetcher": "a function origin -> bytes-or-IOError, supporting local paths
// and http/https/ftp URIs. No authentication."). Local-path origins never
// reach a Fetcher; only schemas imported by URI string do.
type Fetcher func(ctx context.Context, rawURI string) ([]byte, error)

// defaultFetcher implements Fetcher for http, https, and ftp schemes with no
// authentication, per spec §4.1 step 3.
func defaultFetcher(ctx context.Context, rawURI string) ([]byte, error) {
	u, err := url.Parse(rawURI)
	if err != nil {
		return nil, fmt.Errorf("parse URI %q: %w", rawURI, err)
	}

	switch strings.ToLower(u.Scheme) {
	case "http", "https":
		return fetchHTTP(ctx, rawURI)
	case "ftp":
		return fetchFTP(ctx, u)
	default:
		return nil, fmt.Errorf("unsupported import URI scheme %q", u.Scheme)
	}
}

// httpClient is shared across fetches; the loader is single-threaded per
// spec §5, so no additional synchronization is needed here.
var httpClient = &http.Client{Timeout: 30 * time.Second}

func fetchHTTP(ctx context.Context, rawURI string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURI, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %q: %w", rawURI, err)
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %q: %w", rawURI, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch %q: unexpected status %s", rawURI, resp.Status)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response body for %q: %w", rawURI, err)
	}
	return body, nil
}

// fetchFTP retrieves a file over anonymous FTP (RFC 959). Go's standard
// library has no FTP client, and none of the example repos import one, so
// this implements the minimal anonymous RETR sequence directly on top of
// net/textproto rather than adding a dependency for a single call site.
func fetchFTP(ctx context.Context, u *url.URL) ([]byte, error) {
	host := u.Host
	if u.Port() == "" {
		host = host + ":21"
	}

	// textproto.Dial has no context support; check for cancellation before
	// starting the blocking dial.
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	conn, err := textproto.Dial("tcp", host)
	if err != nil {
		return nil, fmt.Errorf("dial ftp host %q: %w", host, err)
	}
	defer conn.Close()

	if _, _, err := conn.ReadResponse(2); err != nil {
		return nil, fmt.Errorf("ftp banner from %q: %w", host, err)
	}

	if err := ftpCommand(conn, "USER anonymous", 3); err != nil {
		return nil, err
	}
	if err := ftpCommand(conn, "PASS anonymous@", 2); err != nil {
		return nil, err
	}
	if err := ftpCommand(conn, "TYPE I", 2); err != nil {
		return nil, err
	}

	dataHost, dataPort, err := ftpPassive(conn)
	if err != nil {
		return nil, err
	}

	id, err := conn.Cmd("RETR %s", u.Path)
	if err != nil {
		return nil, fmt.Errorf("ftp RETR %q: %w", u.Path, err)
	}
	conn.StartResponse(id)
	_, _, err = conn.ReadCodeLine(1)
	conn.EndResponse(id)
	if err != nil {
		return nil, fmt.Errorf("ftp RETR %q: %w", u.Path, err)
	}

	dataConn, err := textproto.Dial("tcp", fmt.Sprintf("%s:%d", dataHost, dataPort))
	if err != nil {
		return nil, fmt.Errorf("dial ftp data connection: %w", err)
	}
	defer dataConn.Close()

	body, err := io.ReadAll(dataConn.R)
	if err != nil {
		return nil, fmt.Errorf("read ftp data connection: %w", err)
	}

	if _, _, err := conn.ReadResponse(2); err != nil {
		return nil, fmt.Errorf("ftp transfer complete: %w", err)
	}

	return body, nil
}

func ftpCommand(conn *textproto.Conn, cmd string, expectCode int) error {
	id, err := conn.Cmd("%s", cmd)
	if err != nil {
		return fmt.Errorf("ftp command %q: %w", cmd, err)
	}
	conn.StartResponse(id)
	_, _, err = conn.ReadCodeLine(expectCode * 100)
	conn.EndResponse(id)
	if err != nil {
		return fmt.Errorf("ftp command %q: %w", cmd, err)
	}
	return nil
}

// ftpPassive issues PASV and parses the (host, port) pair from the
// "227 Entering Passive Mode (h1,h2,h3,h4,p1,p2)" reply.
func ftpPassive(conn *textproto.Conn) (string, int, error) {
	id, err := conn.Cmd("PASV")
	if err != nil {
		return "", 0, fmt.Errorf("ftp PASV: %w", err)
	}
	conn.StartResponse(id)
	_, line, err := conn.ReadCodeLine(227)
	conn.EndResponse(id)
	if err != nil {
		return "", 0, fmt.Errorf("ftp PASV: %w", err)
	}

	open := strings.IndexByte(line, '(')
	shut := strings.IndexByte(line, ')')
	if open < 0 || shut < 0 || shut < open {
		return "", 0, fmt.Errorf("ftp PASV: malformed reply %q", line)
	}
	parts := strings.Split(line[open+1:shut], ",")
	if len(parts) != 6 {
		return "", 0, fmt.Errorf("ftp PASV: malformed reply %q", line)
	}
	host := strings.Join(parts[:4], ".")
	var p1, p2 int
	if _, err := fmt.Sscanf(parts[4], "%d", &p1); err != nil {
		return "", 0, fmt.Errorf("ftp PASV: malformed port %q", line)
	}
	if _, err := fmt.Sscanf(parts[5], "%d", &p2); err != nil {
		return "", 0, fmt.Errorf("ftp PASV: malformed port %q", line)
	}
	return host, p1*256 + p2, nil
}
