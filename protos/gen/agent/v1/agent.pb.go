// Code generated by protoc-gen-go. DO NOT EDIT.
// versions:
// 	protoc-gen-go v1.36.10
// 	protoc        (unknown)
// source: agent/v1/agent.proto

package agentv1

import (
	protoreflect "google.golang.org/protobuf/reflect/protoreflect"
	protoimpl "google.golang.org/protobuf/runtime/protoimpl"
	timestamppb "google.golang.org/protobuf/types/known/timestamppb"
	reflect "reflect"
	sync "sync"
	unsafe "unsafe"
)

const (
	// Verify that this generated code is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(20 - protoimpl.MinVersion)
	// Verify that runtime/protoimpl is sufficiently up-to-date.
	_ = protoimpl.EnforceVersion(protoimpl.MaxVersion - 20)
)

type AgentProfileRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	AgentId       string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *AgentProfileRequest) Reset() {
	*x = AgentProfileRequest{}
	mi := &file_agent_v1_agent_proto_msgTypes[0]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *AgentProfileRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*AgentProfileRequest) ProtoMessage() {}

func (x *AgentProfileRequest) ProtoReflect() protoreflect.Message {
	mi := &file_agent_v1_agent_proto_msgTypes[0]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use AgentProfileRequest.ProtoReflect.Descriptor instead.
func (*AgentProfileRequest) Descriptor() ([]byte, []int) {
	return file_agent_v1_agent_proto_rawDescGZIP(), []int{0}
}

func (x *AgentProfileRequest) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

type AgentProfileResponse struct {
	state                  protoimpl.MessageState `protogen:"open.v1"`
	AgentId                string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	Name                   string                 `protobuf:"bytes,2,opt,name=name,proto3" json:"name,omitempty"`
	Timezone               string                 `protobuf:"bytes,3,opt,name=timezone,proto3" json:"timezone,omitempty"`
	ReminderOffsetsMinutes []int32                `protobuf:"varint,4,rep,packed,name=reminder_offsets_minutes,json=reminderOffsetsMinutes,proto3" json:"reminder_offsets_minutes,omitempty"`
	unknownFields          protoimpl.UnknownFields
	sizeCache              protoimpl.SizeCache
}

func (x *AgentProfileResponse) Reset() {
	*x = AgentProfileResponse{}
	mi := &file_agent_v1_agent_proto_msgTypes[1]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *AgentProfileResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*AgentProfileResponse) ProtoMessage() {}

func (x *AgentProfileResponse) ProtoReflect() protoreflect.Message {
	mi := &file_agent_v1_agent_proto_msgTypes[1]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use AgentProfileResponse.ProtoReflect.Descriptor instead.
func (*AgentProfileResponse) Descriptor() ([]byte, []int) {
	return file_agent_v1_agent_proto_rawDescGZIP(), []int{1}
}

func (x *AgentProfileResponse) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *AgentProfileResponse) GetName() string {
	if x != nil {
		return x.Name
	}
	return ""
}

func (x *AgentProfileResponse) GetTimezone() string {
	if x != nil {
		return x.Timezone
	}
	return ""
}

func (x *AgentProfileResponse) GetReminderOffsetsMinutes() []int32 {
	if x != nil {
		return x.ReminderOffsetsMinutes
	}
	return nil
}

type ListingConfigRequest struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	AgentId       string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	ListingId     string                 `protobuf:"bytes,2,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *ListingConfigRequest) Reset() {
	*x = ListingConfigRequest{}
	mi := &file_agent_v1_agent_proto_msgTypes[2]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListingConfigRequest) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListingConfigRequest) ProtoMessage() {}

func (x *ListingConfigRequest) ProtoReflect() protoreflect.Message {
	mi := &file_agent_v1_agent_proto_msgTypes[2]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListingConfigRequest.ProtoReflect.Descriptor instead.
func (*ListingConfigRequest) Descriptor() ([]byte, []int) {
	return file_agent_v1_agent_proto_rawDescGZIP(), []int{2}
}

func (x *ListingConfigRequest) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *ListingConfigRequest) GetListingId() string {
	if x != nil {
		return x.ListingId
	}
	return ""
}

// DayHours carries wall-clock HH:MM strings in the agent's timezone.
type DayHours struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	DayOfWeek     int32                  `protobuf:"varint,1,opt,name=day_of_week,json=dayOfWeek,proto3" json:"day_of_week,omitempty"` // 0 = Sunday .. 6 = Saturday
	Enabled       bool                   `protobuf:"varint,2,opt,name=enabled,proto3" json:"enabled,omitempty"`
	Start         string                 `protobuf:"bytes,3,opt,name=start,proto3" json:"start,omitempty"`
	End           string                 `protobuf:"bytes,4,opt,name=end,proto3" json:"end,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *DayHours) Reset() {
	*x = DayHours{}
	mi := &file_agent_v1_agent_proto_msgTypes[3]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *DayHours) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*DayHours) ProtoMessage() {}

func (x *DayHours) ProtoReflect() protoreflect.Message {
	mi := &file_agent_v1_agent_proto_msgTypes[3]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use DayHours.ProtoReflect.Descriptor instead.
func (*DayHours) Descriptor() ([]byte, []int) {
	return file_agent_v1_agent_proto_rawDescGZIP(), []int{3}
}

func (x *DayHours) GetDayOfWeek() int32 {
	if x != nil {
		return x.DayOfWeek
	}
	return 0
}

func (x *DayHours) GetEnabled() bool {
	if x != nil {
		return x.Enabled
	}
	return false
}

func (x *DayHours) GetStart() string {
	if x != nil {
		return x.Start
	}
	return ""
}

func (x *DayHours) GetEnd() string {
	if x != nil {
		return x.End
	}
	return ""
}

type TimeOffInterval struct {
	state         protoimpl.MessageState `protogen:"open.v1"`
	StartUtc      *timestamppb.Timestamp `protobuf:"bytes,1,opt,name=start_utc,json=startUtc,proto3" json:"start_utc,omitempty"`
	EndUtc        *timestamppb.Timestamp `protobuf:"bytes,2,opt,name=end_utc,json=endUtc,proto3" json:"end_utc,omitempty"`
	unknownFields protoimpl.UnknownFields
	sizeCache     protoimpl.SizeCache
}

func (x *TimeOffInterval) Reset() {
	*x = TimeOffInterval{}
	mi := &file_agent_v1_agent_proto_msgTypes[4]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *TimeOffInterval) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*TimeOffInterval) ProtoMessage() {}

func (x *TimeOffInterval) ProtoReflect() protoreflect.Message {
	mi := &file_agent_v1_agent_proto_msgTypes[4]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use TimeOffInterval.ProtoReflect.Descriptor instead.
func (*TimeOffInterval) Descriptor() ([]byte, []int) {
	return file_agent_v1_agent_proto_rawDescGZIP(), []int{4}
}

func (x *TimeOffInterval) GetStartUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.StartUtc
	}
	return nil
}

func (x *TimeOffInterval) GetEndUtc() *timestamppb.Timestamp {
	if x != nil {
		return x.EndUtc
	}
	return nil
}

type ListingConfigResponse struct {
	state                  protoimpl.MessageState `protogen:"open.v1"`
	AgentId                string                 `protobuf:"bytes,1,opt,name=agent_id,json=agentId,proto3" json:"agent_id,omitempty"`
	ListingId              string                 `protobuf:"bytes,2,opt,name=listing_id,json=listingId,proto3" json:"listing_id,omitempty"`
	Timezone               string                 `protobuf:"bytes,3,opt,name=timezone,proto3" json:"timezone,omitempty"`
	ShowingDurationMinutes int32                  `protobuf:"varint,4,opt,name=showing_duration_minutes,json=showingDurationMinutes,proto3" json:"showing_duration_minutes,omitempty"`
	BufferMinutes          int32                  `protobuf:"varint,5,opt,name=buffer_minutes,json=bufferMinutes,proto3" json:"buffer_minutes,omitempty"`
	DaysAhead              int32                  `protobuf:"varint,6,opt,name=days_ahead,json=daysAhead,proto3" json:"days_ahead,omitempty"`
	Week                   []*DayHours            `protobuf:"bytes,7,rep,name=week,proto3" json:"week,omitempty"`
	TimeOff                []*TimeOffInterval     `protobuf:"bytes,8,rep,name=time_off,json=timeOff,proto3" json:"time_off,omitempty"`
	unknownFields          protoimpl.UnknownFields
	sizeCache              protoimpl.SizeCache
}

func (x *ListingConfigResponse) Reset() {
	*x = ListingConfigResponse{}
	mi := &file_agent_v1_agent_proto_msgTypes[5]
	ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
	ms.StoreMessageInfo(mi)
}

func (x *ListingConfigResponse) String() string {
	return protoimpl.X.MessageStringOf(x)
}

func (*ListingConfigResponse) ProtoMessage() {}

func (x *ListingConfigResponse) ProtoReflect() protoreflect.Message {
	mi := &file_agent_v1_agent_proto_msgTypes[5]
	if x != nil {
		ms := protoimpl.X.MessageStateOf(protoimpl.Pointer(x))
		if ms.LoadMessageInfo() == nil {
			ms.StoreMessageInfo(mi)
		}
		return ms
	}
	return mi.MessageOf(x)
}

// Deprecated: Use ListingConfigResponse.ProtoReflect.Descriptor instead.
func (*ListingConfigResponse) Descriptor() ([]byte, []int) {
	return file_agent_v1_agent_proto_rawDescGZIP(), []int{5}
}

func (x *ListingConfigResponse) GetAgentId() string {
	if x != nil {
		return x.AgentId
	}
	return ""
}

func (x *ListingConfigResponse) GetListingId() string {
	if x != nil {
		return x.ListingId
	}
	return ""
}

func (x *ListingConfigResponse) GetTimezone() string {
	if x != nil {
		return x.Timezone
	}
	return ""
}

func (x *ListingConfigResponse) GetShowingDurationMinutes() int32 {
	if x != nil {
		return x.ShowingDurationMinutes
	}
	return 0
}

func (x *ListingConfigResponse) GetBufferMinutes() int32 {
	if x != nil {
		return x.BufferMinutes
	}
	return 0
}

func (x *ListingConfigResponse) GetDaysAhead() int32 {
	if x != nil {
		return x.DaysAhead
	}
	return 0
}

func (x *ListingConfigResponse) GetWeek() []*DayHours {
	if x != nil {
		return x.Week
	}
	return nil
}

func (x *ListingConfigResponse) GetTimeOff() []*TimeOffInterval {
	if x != nil {
		return x.TimeOff
	}
	return nil
}

var File_agent_v1_agent_proto protoreflect.FileDescriptor

const file_agent_v1_agent_proto_rawDesc = "" +
	"\n" +
	"\x14agent/v1/agent.proto\x12\bagent.v1\x1a\x1fgoogle/protobuf/timestamp.proto\"0\n" +
	"\x13AgentProfileRequest\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\"\x9b\x01\n" +
	"\x14AgentProfileResponse\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x12\n" +
	"\x04name\x18\x02 \x01(\tR\x04name\x12\x1a\n" +
	"\btimezone\x18\x03 \x01(\tR\btimezone\x128\n" +
	"\x18reminder_offsets_minutes\x18\x04 \x03(\x05R\x16reminderOffsetsMinutes\"P\n" +
	"\x14ListingConfigRequest\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x1d\n" +
	"\n" +
	"listing_id\x18\x02 \x01(\tR\tlistingId\"l\n" +
	"\bDayHours\x12\x1e\n" +
	"\vday_of_week\x18\x01 \x01(\x05R\tdayOfWeek\x12\x18\n" +
	"\aenabled\x18\x02 \x01(\bR\aenabled\x12\x14\n" +
	"\x05start\x18\x03 \x01(\tR\x05start\x12\x10\n" +
	"\x03end\x18\x04 \x01(\tR\x03end\"\x7f\n" +
	"\x0fTimeOffInterval\x127\n" +
	"\tstart_utc\x18\x01 \x01(\v2\x1a.google.protobuf.TimestampR\bstartUtc\x123\n" +
	"\aend_utc\x18\x02 \x01(\v2\x1a.google.protobuf.TimestampR\x06endUtc\"\xcb\x02\n" +
	"\x15ListingConfigResponse\x12\x19\n" +
	"\bagent_id\x18\x01 \x01(\tR\aagentId\x12\x1d\n" +
	"\n" +
	"listing_id\x18\x02 \x01(\tR\tlistingId\x12\x1a\n" +
	"\btimezone\x18\x03 \x01(\tR\btimezone\x128\n" +
	"\x18showing_duration_minutes\x18\x04 \x01(\x05R\x16showingDurationMinutes\x12%\n" +
	"\x0ebuffer_minutes\x18\x05 \x01(\x05R\rbufferMinutes\x12\x1d\n" +
	"\n" +
	"days_ahead\x18\x06 \x01(\x05R\tdaysAhead\x12&\n" +
	"\x04week\x18\a \x03(\v2\x12.agent.v1.DayHoursR\x04week\x124\n" +
	"\btime_off\x18\b \x03(\v2\x19.agent.v1.TimeOffIntervalR\atimeOff2\xb5\x01\n" +
	"\fAgentService\x12P\n" +
	"\x0fGetAgentProfile\x12\x1d.agent.v1.AgentProfileRequest\x1a\x1e.agent.v1.AgentProfileResponse\x12S\n" +
	"\x10GetListingConfig\x12\x1e.agent.v1.ListingConfigRequest\x1a\x1f.agent.v1.ListingConfigResponseB@Z>github.com/nathan-pruitt/openhouse/protos/gen/agent/v1;agentv1b\x06proto3"

var (
	file_agent_v1_agent_proto_rawDescOnce sync.Once
	file_agent_v1_agent_proto_rawDescData []byte
)

func file_agent_v1_agent_proto_rawDescGZIP() []byte {
	file_agent_v1_agent_proto_rawDescOnce.Do(func() {
		file_agent_v1_agent_proto_rawDescData = protoimpl.X.CompressGZIP(unsafe.Slice(unsafe.StringData(file_agent_v1_agent_proto_rawDesc), len(file_agent_v1_agent_proto_rawDesc)))
	})
	return file_agent_v1_agent_proto_rawDescData
}

var file_agent_v1_agent_proto_msgTypes = make([]protoimpl.MessageInfo, 6)
var file_agent_v1_agent_proto_goTypes = []any{
	(*AgentProfileRequest)(nil),   // 0: agent.v1.AgentProfileRequest
	(*AgentProfileResponse)(nil),  // 1: agent.v1.AgentProfileResponse
	(*ListingConfigRequest)(nil),  // 2: agent.v1.ListingConfigRequest
	(*DayHours)(nil),              // 3: agent.v1.DayHours
	(*TimeOffInterval)(nil),       // 4: agent.v1.TimeOffInterval
	(*ListingConfigResponse)(nil), // 5: agent.v1.ListingConfigResponse
	(*timestamppb.Timestamp)(nil), // 6: google.protobuf.Timestamp
}
var file_agent_v1_agent_proto_depIdxs = []int32{
	6, // 0: agent.v1.TimeOffInterval.start_utc:type_name -> google.protobuf.Timestamp
	6, // 1: agent.v1.TimeOffInterval.end_utc:type_name -> google.protobuf.Timestamp
	3, // 2: agent.v1.ListingConfigResponse.week:type_name -> agent.v1.DayHours
	4, // 3: agent.v1.ListingConfigResponse.time_off:type_name -> agent.v1.TimeOffInterval
	0, // 4: agent.v1.AgentService.GetAgentProfile:input_type -> agent.v1.AgentProfileRequest
	2, // 5: agent.v1.AgentService.GetListingConfig:input_type -> agent.v1.ListingConfigRequest
	1, // 6: agent.v1.AgentService.GetAgentProfile:output_type -> agent.v1.AgentProfileResponse
	5, // 7: agent.v1.AgentService.GetListingConfig:output_type -> agent.v1.ListingConfigResponse
	6, // [6:8] is the sub-list for method output_type
	4, // [4:6] is the sub-list for method input_type
	4, // [4:4] is the sub-list for extension type_name
	4, // [4:4] is the sub-list for extension extendee
	0, // [0:4] is the sub-list for field type_name
}

func init() { file_agent_v1_agent_proto_init() }
func file_agent_v1_agent_proto_init() {
	if File_agent_v1_agent_proto != nil {
		return
	}
	type x struct{}
	out := protoimpl.TypeBuilder{
		File: protoimpl.DescBuilder{
			GoPackagePath: reflect.TypeOf(x{}).PkgPath(),
			RawDescriptor: unsafe.Slice(unsafe.StringData(file_agent_v1_agent_proto_rawDesc), len(file_agent_v1_agent_proto_rawDesc)),
			NumEnums:      0,
			NumMessages:   6,
			NumExtensions: 0,
			NumServices:   1,
		},
		GoTypes:           file_agent_v1_agent_proto_goTypes,
		DependencyIndexes: file_agent_v1_agent_proto_depIdxs,
		MessageInfos:      file_agent_v1_agent_proto_msgTypes,
	}.Build()
	File_agent_v1_agent_proto = out.File
	file_agent_v1_agent_proto_goTypes = nil
	file_agent_v1_agent_proto_depIdxs = nil
}
