package missionlink

import "testing"

func TestEncodeDecodeSetDestination(t *testing.T) {
	pkt := EncodeSetDestination(7, DestinationBody{X: 100.5, Y: -200.25, Z: 5, TerrainAlt: true})

	hdr, err := ParseHeader(pkt)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.VehicleID != 7 {
		t.Errorf("VehicleID = %v, want 7", hdr.VehicleID)
	}
	if hdr.Cmd != CmdSetDestination {
		t.Errorf("Cmd = %v, want CmdSetDestination", hdr.Cmd)
	}

	body, err := DecodeDestinationBody(pkt[HeaderLen : HeaderLen+hdr.BodyLen])
	if err != nil {
		t.Fatalf("DecodeDestinationBody: %v", err)
	}
	if body.X != 100.5 || body.Y != -200.25 || body.Z != 5 || !body.TerrainAlt {
		t.Errorf("decoded body = %+v, want {100.5 -200.25 5 true}", body)
	}
}

func TestEncodeDecodeSetSpeedXY(t *testing.T) {
	pkt := EncodeSetSpeedXY(3, 650)

	hdr, err := ParseHeader(pkt)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	body, err := DecodeSpeedBody(pkt[HeaderLen : HeaderLen+hdr.BodyLen])
	if err != nil {
		t.Fatalf("DecodeSpeedBody: %v", err)
	}
	if body.SpeedCMS != 650 {
		t.Errorf("SpeedCMS = %v, want 650", body.SpeedCMS)
	}
}

func TestEncodeDecodeSetSplineDestination(t *testing.T) {
	pkt := EncodeSetSplineDestination(9, SplineDestinationBody{
		X: 10, Y: 20, Z: 30, TerrainAlt: true,
		StoppedAtStart: true, EndType: SplineEndStraight,
		NextX: 40, NextY: 50, NextZ: 60,
	})

	hdr, err := ParseHeader(pkt)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.Cmd != CmdSetSplineDestination {
		t.Errorf("Cmd = %v, want CmdSetSplineDestination", hdr.Cmd)
	}

	body, err := DecodeSplineDestinationBody(pkt[HeaderLen : HeaderLen+hdr.BodyLen])
	if err != nil {
		t.Fatalf("DecodeSplineDestinationBody: %v", err)
	}
	if body.X != 10 || body.Y != 20 || body.Z != 30 || !body.TerrainAlt {
		t.Errorf("decoded destination = %+v, want {10 20 30 true ...}", body)
	}
	if !body.StoppedAtStart || body.EndType != SplineEndStraight {
		t.Errorf("decoded boundary policy = %+v, want stoppedAtStart=true endType=SplineEndStraight", body)
	}
	if body.NextX != 40 || body.NextY != 50 || body.NextZ != 60 {
		t.Errorf("decoded next leg = %+v", body)
	}
}

func TestParseHeaderRejectsBadMagic(t *testing.T) {
	data := make([]byte, HeaderLen)
	_, err := ParseHeader(data)
	if err == nil {
		t.Error("expected error for all-zero (bad magic) header")
	}
}

func TestParseHeaderRejectsShortPacket(t *testing.T) {
	_, err := ParseHeader([]byte{1, 2, 3})
	if err == nil {
		t.Error("expected error for packet shorter than header")
	}
}

func TestEncodeShiftOriginHasNoBody(t *testing.T) {
	pkt := EncodeShiftOrigin(1)
	hdr, err := ParseHeader(pkt)
	if err != nil {
		t.Fatalf("ParseHeader: %v", err)
	}
	if hdr.BodyLen != 0 {
		t.Errorf("BodyLen = %v, want 0", hdr.BodyLen)
	}
	if len(pkt) != HeaderLen {
		t.Errorf("packet length = %v, want %v", len(pkt), HeaderLen)
	}
}
