package escrow

import (
	"github.com/gogo/protobuf/proto"
	"github.com/iov-one/pact/asset"
)

// Coordinator is the root record of a bundle of terms. All other records
// are keyed by the coordinator id.
type Coordinator struct {
	// Owners is the sorted set of parties that author and ratify the bundle.
	Owners []string `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
	// Address is derived from the "escrow/seq/<id>" condition.
	Address     []byte `protobuf:"bytes,2,opt,name=address,proto3" json:"address,omitempty"`
	Settled     bool   `protobuf:"varint,3,opt,name=settled,proto3" json:"settled,omitempty"`
	Settlements int64  `protobuf:"varint,4,opt,name=settlements,proto3" json:"settlements,omitempty"`
}

func (m *Coordinator) Reset()         { *m = Coordinator{} }
func (m *Coordinator) String() string { return proto.CompactTextString(m) }
func (*Coordinator) ProtoMessage()    {}

// Term is a conditional transfer: the sender owes the receiver the asset.
type Term struct {
	Sender    string       `protobuf:"bytes,1,opt,name=sender,proto3" json:"sender,omitempty"`
	Receiver  string       `protobuf:"bytes,2,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Asset     *asset.Asset `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset,omitempty"`
	Satisfied bool         `protobuf:"varint,4,opt,name=satisfied,proto3" json:"satisfied,omitempty"`
}

func (m *Term) Reset()         { *m = Term{} }
func (m *Term) String() string { return proto.CompactTextString(m) }
func (*Term) ProtoMessage()    {}

// Deposit is what a sender currently escrows.
type Deposit struct {
	Party string       `protobuf:"bytes,1,opt,name=party,proto3" json:"party,omitempty"`
	Asset *asset.Asset `protobuf:"bytes,2,opt,name=asset,proto3" json:"asset,omitempty"`
}

func (m *Deposit) Reset()         { *m = Deposit{} }
func (m *Deposit) String() string { return proto.CompactTextString(m) }
func (*Deposit) ProtoMessage()    {}

// Signature marks that an owner ratified the current bundle.
type Signature struct {
	Party string `protobuf:"bytes,1,opt,name=party,proto3" json:"party,omitempty"`
}

func (m *Signature) Reset()         { *m = Signature{} }
func (m *Signature) String() string { return proto.CompactTextString(m) }
func (*Signature) ProtoMessage()    {}

// Release is an outbox entry written by a successful execution.
type Release struct {
	ID          []byte       `protobuf:"bytes,1,opt,name=id,proto3" json:"id,omitempty"`
	Coordinator []byte       `protobuf:"bytes,2,opt,name=coordinator,proto3" json:"coordinator,omitempty"`
	Term        string       `protobuf:"bytes,3,opt,name=term,proto3" json:"term,omitempty"`
	Sender      string       `protobuf:"bytes,4,opt,name=sender,proto3" json:"sender,omitempty"`
	Receiver    string       `protobuf:"bytes,5,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Asset       *asset.Asset `protobuf:"bytes,6,opt,name=asset,proto3" json:"asset,omitempty"`
}

func (m *Release) Reset()         { *m = Release{} }
func (m *Release) String() string { return proto.CompactTextString(m) }
func (*Release) ProtoMessage()    {}

// Configuration is stored via gconf under the "escrow" package.
type Configuration struct {
	MaxOwners int64 `protobuf:"varint,1,opt,name=max_owners,json=maxOwners,proto3" json:"max_owners,omitempty"`
	MaxTerms  int64 `protobuf:"varint,2,opt,name=max_terms,json=maxTerms,proto3" json:"max_terms,omitempty"`
}

func (m *Configuration) Reset()         { *m = Configuration{} }
func (m *Configuration) String() string { return proto.CompactTextString(m) }
func (*Configuration) ProtoMessage()    {}

type CreateMsg struct {
	Owners []string `protobuf:"bytes,1,rep,name=owners,proto3" json:"owners,omitempty"`
}

func (m *CreateMsg) Reset()         { *m = CreateMsg{} }
func (m *CreateMsg) String() string { return proto.CompactTextString(m) }
func (*CreateMsg) ProtoMessage()    {}

type AddTermMsg struct {
	EscrowID []byte       `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
	Name     string       `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Sender   string       `protobuf:"bytes,3,opt,name=sender,proto3" json:"sender,omitempty"`
	Receiver string       `protobuf:"bytes,4,opt,name=receiver,proto3" json:"receiver,omitempty"`
	Asset    *asset.Asset `protobuf:"bytes,5,opt,name=asset,proto3" json:"asset,omitempty"`
}

func (m *AddTermMsg) Reset()         { *m = AddTermMsg{} }
func (m *AddTermMsg) String() string { return proto.CompactTextString(m) }
func (*AddTermMsg) ProtoMessage()    {}

type RemoveTermMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
	Name     string `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
}

func (m *RemoveTermMsg) Reset()         { *m = RemoveTermMsg{} }
func (m *RemoveTermMsg) String() string { return proto.CompactTextString(m) }
func (*RemoveTermMsg) ProtoMessage()    {}

type SignMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
}

func (m *SignMsg) Reset()         { *m = SignMsg{} }
func (m *SignMsg) String() string { return proto.CompactTextString(m) }
func (*SignMsg) ProtoMessage()    {}

type DepositMsg struct {
	EscrowID []byte       `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
	Term     string       `protobuf:"bytes,2,opt,name=term,proto3" json:"term,omitempty"`
	Asset    *asset.Asset `protobuf:"bytes,3,opt,name=asset,proto3" json:"asset,omitempty"`
}

func (m *DepositMsg) Reset()         { *m = DepositMsg{} }
func (m *DepositMsg) String() string { return proto.CompactTextString(m) }
func (*DepositMsg) ProtoMessage()    {}

type WithdrawMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
	Term     string `protobuf:"bytes,2,opt,name=term,proto3" json:"term,omitempty"`
}

func (m *WithdrawMsg) Reset()         { *m = WithdrawMsg{} }
func (m *WithdrawMsg) String() string { return proto.CompactTextString(m) }
func (*WithdrawMsg) ProtoMessage()    {}

type ExecuteMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
}

func (m *ExecuteMsg) Reset()         { *m = ExecuteMsg{} }
func (m *ExecuteMsg) String() string { return proto.CompactTextString(m) }
func (*ExecuteMsg) ProtoMessage()    {}

type ResetMsg struct {
	EscrowID []byte `protobuf:"bytes,1,opt,name=escrow_id,json=escrowId,proto3" json:"escrow_id,omitempty"`
}

func (m *ResetMsg) Reset()         { *m = ResetMsg{} }
func (m *ResetMsg) String() string { return proto.CompactTextString(m) }
func (*ResetMsg) ProtoMessage()    {}
