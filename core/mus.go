// Copyright 2026 Nexusworks
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package core

import (
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/raw"
	"github.com/mus-format/mus-go/varint"
)

// MUS serializer values for the stored domain types. The serializers are
// hand-written against the mus-go primitives; field order is the wire format
// and must not change without a migration.
var (
	// EntityIDMUS serializes EntityID values.
	EntityIDMUS = entityIDMUS{}
	// EntityMUS serializes Entity values.
	EntityMUS = entityMUS{}

	stringSliceMUS = ord.NewSliceSer[string](ord.String)
	vectorMUS      = ord.NewSliceSer[float32](raw.Float32)
)

type entityIDMUS struct{}

func (s entityIDMUS) Marshal(id EntityID, bs []byte) (n int) {
	return ord.String.Marshal(string(id), bs)
}

func (s entityIDMUS) Unmarshal(bs []byte) (id EntityID, n int, err error) {
	v, n, err := ord.String.Unmarshal(bs)
	return EntityID(v), n, err
}

func (s entityIDMUS) Size(id EntityID) int {
	return ord.String.Size(string(id))
}

func (s entityIDMUS) Skip(bs []byte) (n int, err error) {
	return ord.String.Skip(bs)
}

type attributesMUS struct{}

func (s attributesMUS) Marshal(a Attributes, bs []byte) (n int) {
	n = ord.String.Marshal(a.Profile, bs)
	n += stringSliceMUS.Marshal(a.Skills, bs[n:])
	n += stringSliceMUS.Marshal(a.Interests, bs[n:])
	n += stringSliceMUS.Marshal(a.Preferences, bs[n:])
	n += stringSliceMUS.Marshal(a.ApplicantTypes, bs[n:])
	n += varint.Int.Marshal(int(a.Delivery), bs[n:])
	n += varint.Int.Marshal(a.Duration.MinMonths, bs[n:])
	n += varint.Int.Marshal(a.Duration.MaxMonths, bs[n:])
	n += ord.String.Marshal(a.Location, bs[n:])
	n += ord.String.Marshal(a.Status, bs[n:])
	n += ord.String.Marshal(a.Summary, bs[n:])
	return
}

func (s attributesMUS) Unmarshal(bs []byte) (a Attributes, n int, err error) {
	var n1 int
	a.Profile, n, err = ord.String.Unmarshal(bs)
	if err != nil {
		return
	}
	a.Skills, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Interests, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Preferences, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.ApplicantTypes, n1, err = stringSliceMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var delivery int
	delivery, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Delivery = DeliveryMode(delivery)
	a.Duration.MinMonths, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Duration.MaxMonths, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Location, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Status, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	a.Summary, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	return
}

func (s attributesMUS) Size(a Attributes) (size int) {
	size = ord.String.Size(a.Profile)
	size += stringSliceMUS.Size(a.Skills)
	size += stringSliceMUS.Size(a.Interests)
	size += stringSliceMUS.Size(a.Preferences)
	size += stringSliceMUS.Size(a.ApplicantTypes)
	size += varint.Int.Size(int(a.Delivery))
	size += varint.Int.Size(a.Duration.MinMonths)
	size += varint.Int.Size(a.Duration.MaxMonths)
	size += ord.String.Size(a.Location)
	size += ord.String.Size(a.Status)
	size += ord.String.Size(a.Summary)
	return
}

type entityMUS struct{}

func (s entityMUS) Marshal(e Entity, bs []byte) (n int) {
	n = EntityIDMUS.Marshal(e.Id, bs)
	n += varint.Int.Marshal(int(e.Type), bs[n:])
	n += ord.String.Marshal(e.Name, bs[n:])
	n += attributesMUS{}.Marshal(e.Attributes, bs[n:])
	n += ord.String.Marshal(e.Text, bs[n:])
	n += vectorMUS.Marshal(e.Vector, bs[n:])
	n += varint.Int64.Marshal(e.InsertedAt.UnixMicro(), bs[n:])
	n += varint.Int64.Marshal(e.UpdatedAt.UnixMicro(), bs[n:])
	return
}

func (s entityMUS) Unmarshal(bs []byte) (e Entity, n int, err error) {
	var n1 int
	e.Id, n, err = EntityIDMUS.Unmarshal(bs)
	if err != nil {
		return
	}
	var entityType int
	entityType, n1, err = varint.Int.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Type = EntityType(entityType)
	e.Name, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Attributes, n1, err = attributesMUS{}.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Text, n1, err = ord.String.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.Vector, n1, err = vectorMUS.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	var micros int64
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.InsertedAt = time.UnixMicro(micros).UTC()
	micros, n1, err = varint.Int64.Unmarshal(bs[n:])
	n += n1
	if err != nil {
		return
	}
	e.UpdatedAt = time.UnixMicro(micros).UTC()
	return
}

func (s entityMUS) Size(e Entity) (size int) {
	size = EntityIDMUS.Size(e.Id)
	size += varint.Int.Size(int(e.Type))
	size += ord.String.Size(e.Name)
	size += attributesMUS{}.Size(e.Attributes)
	size += ord.String.Size(e.Text)
	size += vectorMUS.Size(e.Vector)
	size += varint.Int64.Size(e.InsertedAt.UnixMicro())
	size += varint.Int64.Size(e.UpdatedAt.UnixMicro())
	return
}
