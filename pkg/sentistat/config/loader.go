package config

import (
	"fmt"

	"github.com/cognicore/sentistat/pkg/sentistat/labels"
	"github.com/cognicore/sentistat/pkg/sentistat/stoplist"
	"github.com/cognicore/sentistat/pkg/sentistat/text"
)

// Components holds the objects built from a Config.
type Components struct {
	Normalizer *text.Normalizer
	Stoplist   *stoplist.Manager
	Scheme     *labels.Scheme
}

// Load builds the normalizer, stoplist and label scheme for cfg.
func (c Config) Load() (*Components, error) {
	comp := &Components{
		Normalizer: text.NewNormalizer(c.StripMarkup),
	}

	if c.Stoplist != "" {
		sl, err := LoadStoplist(c.Stoplist)
		if err != nil {
			return nil, fmt.Errorf("load stoplist: %w", err)
		}
		comp.Stoplist = stoplist.NewManager(sl.Terms)
	} else {
		comp.Stoplist = stoplist.NewDefault()
	}
	for _, w := range c.ExtraStopwords {
		comp.Stoplist.Add(w, stoplist.Reason{Configured: true})
	}

	if len(c.Labels) > 0 {
		names := make(map[labels.Label]string, len(c.Labels))
		for v, n := range c.Labels {
			names[labels.Label(v)] = n
		}
		comp.Scheme = labels.NewScheme(names)
	} else {
		comp.Scheme = labels.DefaultScheme()
	}

	return comp, nil
}
