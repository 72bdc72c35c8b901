package fleet

// Wire types of the spot fleet request document. Field names are the JSON keys
// the spot event plugin reads, so unset optional fields must stay absent.

type RequestDocument struct {
	AllocationStrategy               string                `json:"AllocationStrategy"`
	IamFleetRole                     string                `json:"IamFleetRole"`
	LaunchSpecifications             []LaunchSpecification `json:"LaunchSpecifications"`
	ReplaceUnhealthyInstances        bool                  `json:"ReplaceUnhealthyInstances"`
	TargetCapacity                   int64                 `json:"TargetCapacity"`
	TerminateInstancesWithExpiration bool                  `json:"TerminateInstancesWithExpiration"`
	Type                             string                `json:"Type"`
	TagSpecifications                []TagSpecification    `json:"TagSpecifications,omitempty"`
	ValidUntil                       string                `json:"ValidUntil,omitempty"`
}

type LaunchSpecification struct {
	BlockDeviceMappings []BlockDeviceMapping `json:"BlockDeviceMappings,omitempty"`
	IamInstanceProfile  IamInstanceProfile   `json:"IamInstanceProfile"`
	ImageId             string               `json:"ImageId"`
	InstanceType        string               `json:"InstanceType"`
	KeyName             string               `json:"KeyName,omitempty"`
	SecurityGroups      []GroupIdentifier    `json:"SecurityGroups"`
	SubnetId            string               `json:"SubnetId,omitempty"`
	TagSpecifications   []TagSpecification   `json:"TagSpecifications,omitempty"`
	UserData            string               `json:"UserData,omitempty"`
}

type IamInstanceProfile struct {
	Arn string `json:"Arn"`
}

type GroupIdentifier struct {
	GroupId string `json:"GroupId"`
}

type TagSpecification struct {
	ResourceType string `json:"ResourceType"`
	Tags         []Tag  `json:"Tags"`
}

type Tag struct {
	Key   string `json:"Key"`
	Value string `json:"Value"`
}

type BlockDeviceMapping struct {
	DeviceName  string          `json:"DeviceName"`
	Ebs         *EBSBlockDevice `json:"Ebs,omitempty"`
	NoDevice    *string         `json:"NoDevice,omitempty"`
	VirtualName string          `json:"VirtualName,omitempty"`
}

type EBSBlockDevice struct {
	DeleteOnTermination *bool  `json:"DeleteOnTermination,omitempty"`
	Encrypted           *bool  `json:"Encrypted,omitempty"`
	Iops                *int64 `json:"Iops,omitempty"`
	SnapshotId          string `json:"SnapshotId,omitempty"`
	Throughput          *int64 `json:"Throughput,omitempty"`
	VolumeSize          *int64 `json:"VolumeSize,omitempty"`
	VolumeType          string `json:"VolumeType,omitempty"`
}
