//go:build integration

package integration

import (
	"encoding/xml"
	"fmt"
	"maps"
	"net/http"
	"net/url"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"
)

// fakeObject is one stored object and the encryption it was last written with.
type fakeObject struct {
	Size       int64
	Encryption string
	KMSKeyID   string
	Metadata   string
	Copies     int
}

// fakeS3 is an in-memory S3 endpoint speaking just enough of the REST/XML
// protocol for ListObjectsV2 and CopyObject with path-style addressing.
type fakeS3 struct {
	mu      sync.Mutex
	bucket  string
	objects map[string]*fakeObject

	listCalls  int
	listFaults map[int]string    // list call number -> error code
	copyFaults map[string]string // key -> error code
	copyOrder  []string
}

func newFakeS3(bucket string) *fakeS3 {
	return &fakeS3{
		bucket:     bucket,
		objects:    make(map[string]*fakeObject),
		listFaults: make(map[int]string),
		copyFaults: make(map[string]string),
	}
}

func (f *fakeS3) put(key string, size int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.objects[key] = &fakeObject{Size: size, Metadata: "owner=" + key}
}

func (f *fakeS3) object(key string) fakeObject {
	f.mu.Lock()
	defer f.mu.Unlock()
	return *f.objects[key]
}

func (f *fakeS3) copied() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return slices.Clone(f.copyOrder)
}

func (f *fakeS3) lists() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.listCalls
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/")
	bucket, key, _ := strings.Cut(path, "/")
	if bucket != f.bucket {
		writeError(w, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist")
		return
	}

	switch {
	case r.Method == http.MethodGet && key == "" && r.URL.Query().Get("list-type") == "2":
		f.list(w, r)
	case r.Method == http.MethodPut && key != "" && r.Header.Get("X-Amz-Copy-Source") != "":
		f.copy(w, r, key)
	default:
		writeError(w, http.StatusNotImplemented, "NotImplemented", r.Method+" "+r.URL.Path)
	}
}

type listBucketResult struct {
	XMLName               xml.Name      `xml:"http://s3.amazonaws.com/doc/2006-03-01/ ListBucketResult"`
	Name                  string        `xml:"Name"`
	KeyCount              int           `xml:"KeyCount"`
	MaxKeys               int           `xml:"MaxKeys"`
	IsTruncated           bool          `xml:"IsTruncated"`
	ContinuationToken     string        `xml:"ContinuationToken,omitempty"`
	NextContinuationToken string        `xml:"NextContinuationToken,omitempty"`
	Contents              []listContent `xml:"Contents"`
}

type listContent struct {
	Key          string `xml:"Key"`
	LastModified string `xml:"LastModified"`
	ETag         string `xml:"ETag"`
	Size         int64  `xml:"Size"`
	StorageClass string `xml:"StorageClass"`
}

func (f *fakeS3) list(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.listCalls++
	if code, ok := f.listFaults[f.listCalls]; ok {
		writeError(w, statusFor(code), code, "injected fault")
		return
	}

	q := r.URL.Query()
	maxKeys, err := strconv.Atoi(q.Get("max-keys"))
	if err != nil || maxKeys <= 0 {
		maxKeys = 1000
	}
	offset := 0
	if token := q.Get("continuation-token"); token != "" {
		if offset, err = strconv.Atoi(token); err != nil {
			writeError(w, http.StatusBadRequest, "InvalidArgument", "bad continuation token")
			return
		}
	}

	keys := slices.Sorted(maps.Keys(f.objects))
	end := min(offset+maxKeys, len(keys))

	res := listBucketResult{
		Name:              f.bucket,
		KeyCount:          end - offset,
		MaxKeys:           maxKeys,
		ContinuationToken: q.Get("continuation-token"),
	}
	for _, k := range keys[offset:end] {
		res.Contents = append(res.Contents, listContent{
			Key:          k,
			LastModified: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Format("2006-01-02T15:04:05.000Z"),
			ETag:         fmt.Sprintf("%q", k),
			Size:         f.objects[k].Size,
			StorageClass: "STANDARD",
		})
	}
	if end < len(keys) {
		res.IsTruncated = true
		res.NextContinuationToken = strconv.Itoa(end)
	}
	writeXML(w, http.StatusOK, res)
}

type copyObjectResult struct {
	XMLName      xml.Name `xml:"CopyObjectResult"`
	ETag         string   `xml:"ETag"`
	LastModified string   `xml:"LastModified"`
}

func (f *fakeS3) copy(w http.ResponseWriter, r *http.Request, key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	// S3 form-decodes the copy source: an unescaped "+" reads as a space.
	source, err := url.QueryUnescape(r.Header.Get("X-Amz-Copy-Source"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "InvalidArgument", "bad copy source")
		return
	}
	srcBucket, srcKey, _ := strings.Cut(strings.TrimPrefix(source, "/"), "/")
	if srcBucket != f.bucket || srcKey != key {
		writeError(w, http.StatusBadRequest, "InvalidRequest", "copy source must equal destination")
		return
	}
	if code, ok := f.copyFaults[key]; ok {
		writeError(w, statusFor(code), code, "injected fault")
		return
	}
	obj, ok := f.objects[key]
	if !ok {
		writeError(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist.")
		return
	}
	if r.Header.Get("X-Amz-Metadata-Directive") == "REPLACE" {
		obj.Metadata = ""
	}

	obj.Encryption = r.Header.Get("X-Amz-Server-Side-Encryption")
	obj.KMSKeyID = r.Header.Get("X-Amz-Server-Side-Encryption-Aws-Kms-Key-Id")
	obj.Copies++
	f.copyOrder = append(f.copyOrder, key)

	w.Header().Set("X-Amz-Server-Side-Encryption", obj.Encryption)
	writeXML(w, http.StatusOK, copyObjectResult{
		ETag:         fmt.Sprintf("%q", key),
		LastModified: time.Now().UTC().Format("2006-01-02T15:04:05.000Z"),
	})
}

func statusFor(code string) int {
	switch code {
	case "AccessDenied", "InvalidAccessKeyId", "SignatureDoesNotMatch":
		return http.StatusForbidden
	case "NoSuchKey", "NoSuchBucket":
		return http.StatusNotFound
	case "SlowDown", "ServiceUnavailable":
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

type errorResponse struct {
	XMLName xml.Name `xml:"Error"`
	Code    string   `xml:"Code"`
	Message string   `xml:"Message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeXML(w, status, errorResponse{Code: code, Message: message})
}

func writeXML(w http.ResponseWriter, status int, v any) {
	body, err := xml.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	_, _ = w.Write([]byte(xml.Header))
	_, _ = w.Write(body)
}
