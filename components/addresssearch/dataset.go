package addresssearch

import "github.com/goliatone/go-leadflow/pkg/services"

// DefaultEntries returns the built-in demo dataset: a handful of parcels
// across two jurisdictions, enough to exercise search ranking, parcel
// lookups, and both supported and unsupported estimate paths.
func DefaultEntries() []Entry {
	return []Entry{
		{
			Address: "123 Main St",
			Context: "San Jose, CA",
			ID:      "a1f0c3aa-6b1e-4f3e-9f1d-0d8a2c5e7701",
			Parcel: services.Parcel{
				APN:          "259-41-023",
				Jurisdiction: "San Jose",
				Address:      "123 Main St",
				City:         "San Jose",
				State:        "CA",
				Zip:          "95112",
			},
		},
		{
			Address: "128 Main St",
			Context: "San Jose, CA",
			ID:      "b2c14e90-33d7-4d27-8a62-55c4d9e0a802",
			Parcel: services.Parcel{
				APN:          "259-41-028",
				Jurisdiction: "San Jose",
				Address:      "128 Main St",
				City:         "San Jose",
				State:        "CA",
				Zip:          "95112",
			},
		},
		{
			Address: "450 Willow Ave",
			Context: "San Jose, CA",
			ID:      "c3d25fa1-44e8-4e38-9b73-66d5eaf1b903",
			Parcel: services.Parcel{
				APN:          "274-12-117",
				Jurisdiction: "San Jose",
				Address:      "450 Willow Ave",
				City:         "San Jose",
				State:        "CA",
				Zip:          "95125",
			},
		},
		{
			Address: "77 Cedar Ct",
			Context: "Campbell, CA",
			ID:      "d4e36ab2-55f9-4f49-ac84-77e6fb02ca04",
			Parcel: services.Parcel{
				APN:          "412-08-064",
				Jurisdiction: "Campbell",
				Address:      "77 Cedar Ct",
				City:         "Campbell",
				State:        "CA",
				Zip:          "95008",
			},
		},
		{
			Address: "902 Hamilton Ave",
			Context: "Campbell, CA",
			ID:      "e5f47bc3-660a-4a5a-bd95-88f70c13db05",
			Parcel: services.Parcel{
				APN:          "412-31-009",
				Jurisdiction: "Campbell",
				Address:      "902 Hamilton Ave",
				City:         "Campbell",
				State:        "CA",
				Zip:          "95008",
			},
		},
		{
			Address: "15 Quarry Rd",
			Context: "Milpitas, CA",
			ID:      "f6a58cd4-771b-4b6b-ce06-99081d24ec06",
			Parcel: services.Parcel{
				APN:          "086-27-051",
				Jurisdiction: "Milpitas",
				Address:      "15 Quarry Rd",
				City:         "Milpitas",
				State:        "CA",
				Zip:          "95035",
			},
		},
	}
}
