package java

import "strings"

// ConstructorMethod is the canonical method component for constructor call
// sites, e.g. "SecretKeySpec.<init>".
const ConstructorMethod = "<init>"

// API identifies one recognized crypto entry point by receiver type and
// method name. Method is ConstructorMethod for `new Type(...)` forms.
type API struct {
	Receiver string
	Method   string
}

// Name returns the canonical identifier, e.g. "Cipher.getInstance".
func (a API) Name() string { return a.Receiver + "." + a.Method }

// Registry is the immutable set of recognized crypto APIs. It is passed
// into Extract explicitly so concurrent per-file extraction needs no
// synchronization.
type Registry struct {
	methods map[string][]string // receiver -> method names
	ctors   map[string]bool     // receiver -> constructor recognized
}

func NewRegistry(apis []API) Registry {
	r := Registry{methods: map[string][]string{}, ctors: map[string]bool{}}
	for _, a := range apis {
		if a.Method == ConstructorMethod {
			r.ctors[a.Receiver] = true
			continue
		}
		r.methods[a.Receiver] = append(r.methods[a.Receiver], a.Method)
	}
	return r
}

// DefaultRegistry covers the JCA/JSSE surface the detector knows about.
func DefaultRegistry() Registry {
	return NewRegistry([]API{
		{"Cipher", "getInstance"},
		{"MessageDigest", "getInstance"},
		{"KeyGenerator", "getInstance"},
		{"KeyPairGenerator", "getInstance"},
		{"Mac", "getInstance"},
		{"Signature", "getInstance"},
		{"KeyStore", "getInstance"},
		{"TrustManagerFactory", "getInstance"},
		{"SSLContext", "getInstance"},
		{"SecretKeySpec", ConstructorMethod},
		{"IvParameterSpec", ConstructorMethod},
		{"GCMParameterSpec", ConstructorMethod},
		{"PBEKeySpec", ConstructorMethod},
		{"PBEParameterSpec", ConstructorMethod},
		{"SecureRandom", ConstructorMethod},
		{"Random", ConstructorMethod},
	})
}

// matchMethod resolves receiver+method against the registry. The method
// component compares case-insensitively; the receiver type is exact.
func (r Registry) matchMethod(receiver, method string) (API, bool) {
	for _, m := range r.methods[receiver] {
		if strings.EqualFold(m, method) {
			return API{Receiver: receiver, Method: m}, true
		}
	}
	return API{}, false
}

func (r Registry) matchConstructor(receiver string) (API, bool) {
	if r.ctors[receiver] {
		return API{Receiver: receiver, Method: ConstructorMethod}, true
	}
	return API{}, false
}
