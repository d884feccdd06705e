package libvirt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testDomainXML = `
<domain type='kvm'>
  <name>web01</name>
  <uuid>0d7a55a8-4b8e-4fbb-9fd3-2f6b1a2c9e10</uuid>
  <on_poweroff>destroy</on_poweroff>
  <on_reboot>restart</on_reboot>
  <on_crash>destroy</on_crash>
  <devices>
    <disk type='file' device='disk'>
      <driver name='qemu' type='qcow2'/>
      <source file='/var/lib/libvirt/images/web01.qcow2'/>
      <target dev='vda' bus='virtio'/>
    </disk>
    <disk type='block' device='disk'>
      <driver name='qemu' type='raw'/>
      <source dev='/dev/mapper/vg0-web01'/>
      <target dev='vdb' bus='virtio'/>
    </disk>
    <disk type='network' device='disk'>
      <driver name='qemu' type='raw'/>
      <source protocol='rbd' name='pool/image'/>
      <target dev='vdc' bus='virtio'/>
    </disk>
    <disk type='file' device='cdrom'>
      <driver name='qemu' type='raw'/>
      <target dev='hda' bus='ide'/>
    </disk>
    <interface type='bridge'>
      <mac address='52:54:00:aa:bb:cc'/>
      <source bridge='br0'/>
      <model type='virtio'/>
      <target dev='vnet0'/>
      <driver name='vhost' queues='4'/>
      <address type='pci' domain='0x0000' bus='0x00' slot='0x03' function='0x0'/>
      <virtualport type='openvswitch'/>
    </interface>
    <interface type='user'>
      <model type='e1000'/>
    </interface>
    <graphics type='vnc' port='5900' autoport='yes' listen='127.0.0.1'/>
  </devices>
</domain>`

func TestParseDomainXML(t *testing.T) {
	t.Parallel()

	dom, err := ParseDomainXML(testDomainXML)
	require.NoError(t, err)

	assert.Equal(t, "kvm", dom.Type)
	assert.Equal(t, "web01", dom.Name)
	assert.Equal(t, "0d7a55a8-4b8e-4fbb-9fd3-2f6b1a2c9e10", dom.UUID)
	assert.Equal(t, "destroy", dom.OnPoweroff)
	assert.Equal(t, "restart", dom.OnReboot)
	assert.Equal(t, "destroy", dom.OnCrash)

	t.Run("disks", func(t *testing.T) {
		require.Len(t, dom.Devices.Disks, 4)

		file := dom.Devices.Disks[0]
		assert.Equal(t, "qcow2", file.Driver.Type)
		assert.Equal(t, "/var/lib/libvirt/images/web01.qcow2", file.Source.File)
		assert.Equal(t, "vda", file.Target.Dev)

		block := dom.Devices.Disks[1]
		assert.Equal(t, "/dev/mapper/vg0-web01", block.Source.Dev)

		network := dom.Devices.Disks[2]
		assert.Equal(t, "rbd", network.Source.Protocol)
		assert.Equal(t, "pool/image", network.Source.Name)

		// cdrom 没有 source 子元素
		assert.Nil(t, dom.Devices.Disks[3].Source)
	})

	t.Run("interfaces", func(t *testing.T) {
		require.Len(t, dom.Devices.Interfaces, 2)

		iface := dom.Devices.Interfaces[0]
		assert.Equal(t, "bridge", iface.Type)
		assert.Equal(t, "52:54:00:aa:bb:cc", iface.MAC.Address)
		assert.Equal(t, "virtio", iface.Model.Type)
		assert.Equal(t, "vnet0", iface.Target.Dev)
		assert.Equal(t, map[string]string{"name": "vhost", "queues": "4"}, iface.Driver.Map())
		assert.Equal(t, map[string]string{"bridge": "br0"}, iface.Source.Map())
		assert.Equal(t, "pci", iface.Address.Map()["type"])
		assert.Equal(t, map[string]string{"type": "openvswitch"}, iface.Virtualport.Map())

		// 第二个接口没有 mac 元素
		assert.Nil(t, dom.Devices.Interfaces[1].MAC)
	})

	t.Run("graphics", func(t *testing.T) {
		require.Len(t, dom.Devices.Graphics, 1)
		attrs := dom.Devices.Graphics[0].Map()
		assert.Equal(t, "vnc", attrs["type"])
		assert.Equal(t, "5900", attrs["port"])
		assert.Equal(t, "yes", attrs["autoport"])
		assert.Equal(t, "127.0.0.1", attrs["listen"])
	})
}

func TestParseDomainXML_Invalid(t *testing.T) {
	t.Parallel()

	_, err := ParseDomainXML("<domain><name>broken")
	assert.Error(t, err)
}

func TestAttrGroup_Map_Nil(t *testing.T) {
	t.Parallel()

	var g *AttrGroup
	assert.Nil(t, g.Map())
}
