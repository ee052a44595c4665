package upload

import "github.com/tidwall/gjson"

// maxNesting bounds how deep FileName follows "file" wrappers.
const maxNesting = 8

// FileName extracts the stored file name from an upload value. The frontend
// submits either the upload response itself or a wrapper around it, so the
// lookup tries "file_name", then "response", then recurses into "file". A
// bare JSON string is taken as the name.
func FileName(raw []byte) (string, bool) {
	if !gjson.ValidBytes(raw) {
		return "", false
	}
	return fileName(gjson.ParseBytes(raw), 0)
}

func fileName(v gjson.Result, depth int) (string, bool) {
	if v.Type == gjson.String {
		return v.Str, v.Str != ""
	}
	if !v.IsObject() || depth > maxNesting {
		return "", false
	}
	for _, key := range []string{"file_name", "response"} {
		if r := v.Get(key); r.Exists() && r.Type == gjson.String {
			return r.Str, r.Str != ""
		}
	}
	if f := v.Get("file"); f.Exists() {
		return fileName(f, depth+1)
	}
	return "", false
}
